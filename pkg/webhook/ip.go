package webhook

import (
	"encoding/binary"
	"net/netip"
	"strconv"
	"strings"
)

// ValidateByIP проверяет IP по allow-list из конфигурации.
// Пустой список пропускает любой адрес и пишет предупреждение.
func (v *Validator) ValidateByIP(ip string) bool {
	if len(v.cfg.AllowedIPs) == 0 {
		v.log.Warn().
			Str("ip", ip).
			Msg("Allow-list IP для webhooks пуст: принимаются запросы с любого адреса")
		return true
	}
	return IPAllowed(ip, v.cfg.AllowedIPs)
}

// IPAllowed возвращает true, если ip совпадает с одной из записей
// или попадает в CIDR диапазон. Пустой список ничего не разрешает.
func IPAllowed(ip string, allowed []string) bool {
	for _, entry := range allowed {
		if ipInRange(ip, strings.TrimSpace(entry)) {
			return true
		}
	}
	return false
}

// ipInRange сравнивает (ip & mask) == (subnet & mask) в 32-битном виде.
func ipInRange(ip, entry string) bool {
	if ip == entry {
		return true
	}

	subnet, prefix, ok := strings.Cut(entry, "/")
	if !ok {
		return false
	}

	bits, err := strconv.Atoi(prefix)
	if err != nil || bits < 0 || bits > 32 {
		return false
	}

	ipLong, ok := ip2long(ip)
	if !ok {
		return false
	}
	subnetLong, ok := ip2long(subnet)
	if !ok {
		return false
	}

	// При bits == 0 сдвиг на 32 даёт 0: диапазон покрывает все адреса.
	mask := ^uint32(0) << (32 - bits)
	return ipLong&mask == subnetLong&mask
}

// ip2long переводит IPv4 адрес в uint32. IPv4-mapped IPv6 тоже принимается.
func ip2long(s string) (uint32, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, false
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, false
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:]), true
}
