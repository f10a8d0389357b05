// Package decline классифицирует коды возврата ABECS, которые Pagar.me
// передаёт в last_transaction заказа или платежа.
//
// Таблица кодов неизменяема и инициализируется один раз при загрузке пакета,
// поэтому все функции безопасны для конкурентного использования.
package decline

// Code — четырёхзначный код возврата ABECS.
type Code string

// Одобренные транзакции (0xxx).
const (
	CodeApproved                 Code = "0000"
	CodeApprovedPartialAmount    Code = "0001"
	CodeApprovedVIP              Code = "0002"
	CodeApprovedWithoutSignature Code = "0003"
	CodeApprovedOffline          Code = "0013"
)

// Отказы эмитента или эквайера (1xxx).
const (
	CodeDeclinedGeneric                    Code = "1000"
	CodeDeclinedInvalidCard                Code = "1001"
	CodeDeclinedSuspectedFraud             Code = "1002"
	CodeDeclinedContactAcquirer            Code = "1003"
	CodeDeclinedRestrictedCard             Code = "1004"
	CodeDeclinedContactIssuer              Code = "1005"
	CodeDeclinedTriesExceeded              Code = "1006"
	CodeDeclinedSpecialConditions          Code = "1007"
	CodeDeclinedLostCard                   Code = "1008"
	CodeDeclinedStolenCard                 Code = "1009"
	CodeDeclinedInsufficientFunds          Code = "1016"
	CodeDeclinedInvalidTransaction         Code = "1017"
	CodeDeclinedInvalidAmount              Code = "1018"
	CodeDeclinedInvalidCVV                 Code = "1019"
	CodeDeclinedAuthenticationFailed       Code = "1020"
	CodeDeclinedCardNotProcessed           Code = "1021"
	CodeDeclinedInvalidDate                Code = "1022"
	CodeDeclinedInstallmentsError          Code = "1024"
	CodeDeclinedUnregisteredCard           Code = "1025"
	CodeDeclinedInvalidAuthorization       Code = "1028"
	CodeDeclinedInactiveCard               Code = "1030"
	CodeDeclinedBlockedCard                Code = "1032"
	CodeDeclinedExpiredCard                Code = "1033"
	CodeDeclinedInvalidData                Code = "1034"
	CodeDeclinedTransactionNotAllowed      Code = "1035"
	CodeDeclinedWithdrawalAmountExceeded   Code = "1036"
	CodeDeclinedInvalidIssuer              Code = "1037"
	CodeDeclinedReversalError              Code = "1038"
	CodeDeclinedCryptographyError          Code = "1039"
	CodeDeclinedIssuerUnavailable          Code = "1040"
	CodeDeclinedDuplicateTransaction       Code = "1041"
	CodeDeclinedCardNotEffective           Code = "1042"
	CodeDeclinedConfirmedFraud             Code = "1043"
	CodeDeclinedInvalidAccount             Code = "1051"
	CodeDeclinedInvalidAccountType         Code = "1052"
	CodeDeclinedInvalidTransactionType     Code = "1053"
	CodeDeclinedDailyLimitExceeded         Code = "1054"
	CodeDeclinedMonthlyLimitExceeded       Code = "1055"
	CodeDeclinedDailyWithdrawalLimit       Code = "1056"
	CodeDeclinedDailyWithdrawalCount       Code = "1057"
	CodeDeclinedInvalidInstallmentValue    Code = "1058"
	CodeDeclinedExceedsMaxInstallments     Code = "1059"
	CodeDeclinedInvalidCVVLength           Code = "1061"
	CodeDeclinedRestrictedWallet           Code = "1062"
	CodeDeclinedSecurityViolation          Code = "1063"
	CodeDeclinedExceedsWithdrawalAmount    Code = "1064"
	CodeDeclinedExceedsWithdrawalFrequency Code = "1065"
	CodeDeclinedAntifraudRejected          Code = "1070"
	CodeDeclined3DSFailed                  Code = "1071"
)

// Внутренние ошибки (5xxx).
const (
	CodeErrorGeneric                 Code = "5000"
	CodeErrorAlreadyReversed         Code = "5001"
	CodeErrorPaymentMethodNotEnabled Code = "5002"
	CodeErrorInvalidTransaction      Code = "5003"
	CodeErrorInvalidAmount           Code = "5004"
	CodeErrorUnauthorized            Code = "5005"
	CodeErrorAcquirerTimeout         Code = "5006"
	CodeErrorAcquirerError           Code = "5007"
	CodeErrorInvalidCardNumber       Code = "5008"
	CodeErrorInvalidCVV              Code = "5009"
	CodeErrorAuthenticationFailed    Code = "5010"
	CodeErrorCanceledTransaction     Code = "5011"
	CodeErrorTransactionNotFound     Code = "5012"
	CodeErrorInvalidMerchant         Code = "5013"
	CodeErrorInvalidAcquirer         Code = "5014"
	CodeErrorCommunicationError      Code = "5015"
	CodeErrorDuplicatedOrderID       Code = "5021"
	CodeErrorCVVRequired             Code = "5025"
	CodeErrorInvalidMerchantCategory Code = "5034"
	CodeErrorSplitNotEnabled         Code = "5041"
	CodeErrorInvalidSplit            Code = "5042"
)

// Системные ошибки и таймауты (9xxx).
const (
	CodeTimeoutIssuer       Code = "9111"
	CodeTimeoutAcquirer     Code = "9112"
	CodeIrreversibleDecline Code = "9200"
	CodeSystemError         Code = "9999"
)

// messages — сообщения для покупателя на португальском.
var messages = map[Code]string{
	CodeApproved:                 "Transação aprovada com sucesso",
	CodeApprovedPartialAmount:    "Transação aprovada com valor parcial",
	CodeApprovedVIP:              "Transação aprovada VIP",
	CodeApprovedWithoutSignature: "Transação aprovada sem assinatura",
	CodeApprovedOffline:          "Transação aprovada offline",

	CodeDeclinedGeneric:                    "Transação não autorizada. Contate o banco emissor",
	CodeDeclinedInvalidCard:                "Cartão vencido ou data de expiração incorreta",
	CodeDeclinedSuspectedFraud:             "Transação com suspeita de fraude",
	CodeDeclinedContactAcquirer:            "Contate a adquirente",
	CodeDeclinedRestrictedCard:             "Cartão com restrições",
	CodeDeclinedContactIssuer:              "Contate o banco emissor",
	CodeDeclinedTriesExceeded:              "Número de tentativas de senha excedido",
	CodeDeclinedSpecialConditions:          "Condições especiais - contate o emissor",
	CodeDeclinedLostCard:                   "Cartão reportado como perdido",
	CodeDeclinedStolenCard:                 "Cartão reportado como roubado",
	CodeDeclinedInsufficientFunds:          "Saldo/limite insuficiente",
	CodeDeclinedInvalidTransaction:         "Transação inválida",
	CodeDeclinedInvalidAmount:              "Valor da transação inválido",
	CodeDeclinedInvalidCVV:                 "CVV inválido",
	CodeDeclinedAuthenticationFailed:       "Falha na autenticação",
	CodeDeclinedCardNotProcessed:           "Cartão não processado pelo emissor",
	CodeDeclinedInvalidDate:                "Data inválida",
	CodeDeclinedInstallmentsError:          "Erro no parcelamento",
	CodeDeclinedUnregisteredCard:           "Cartão não cadastrado",
	CodeDeclinedInvalidAuthorization:       "Código de autorização inválido",
	CodeDeclinedInactiveCard:               "Cartão inativo",
	CodeDeclinedBlockedCard:                "Cartão bloqueado",
	CodeDeclinedExpiredCard:                "Cartão vencido",
	CodeDeclinedInvalidData:                "Dados do cartão inválidos",
	CodeDeclinedTransactionNotAllowed:      "Transação não permitida",
	CodeDeclinedWithdrawalAmountExceeded:   "Valor de saque excedido",
	CodeDeclinedInvalidIssuer:              "Emissor inválido ou inexistente",
	CodeDeclinedReversalError:              "Erro no estorno",
	CodeDeclinedCryptographyError:          "Erro de criptografia",
	CodeDeclinedIssuerUnavailable:          "Emissor não disponível",
	CodeDeclinedDuplicateTransaction:       "Transação duplicada",
	CodeDeclinedCardNotEffective:           "Cartão ainda não efetivado",
	CodeDeclinedConfirmedFraud:             "Fraude confirmada",
	CodeDeclinedInvalidAccount:             "Conta inválida",
	CodeDeclinedInvalidAccountType:         "Tipo de conta inválido",
	CodeDeclinedInvalidTransactionType:     "Tipo de transação inválido",
	CodeDeclinedDailyLimitExceeded:         "Limite diário excedido",
	CodeDeclinedMonthlyLimitExceeded:       "Limite mensal excedido",
	CodeDeclinedDailyWithdrawalLimit:       "Limite diário de saque excedido",
	CodeDeclinedDailyWithdrawalCount:       "Número de saques diários excedido",
	CodeDeclinedInvalidInstallmentValue:    "Valor de parcela inválido",
	CodeDeclinedExceedsMaxInstallments:     "Número máximo de parcelas excedido",
	CodeDeclinedInvalidCVVLength:           "Tamanho do CVV inválido",
	CodeDeclinedRestrictedWallet:           "Carteira digital com restrições",
	CodeDeclinedSecurityViolation:          "Violação de segurança",
	CodeDeclinedExceedsWithdrawalAmount:    "Valor de saque excedido",
	CodeDeclinedExceedsWithdrawalFrequency: "Frequência de saque excedida",
	CodeDeclinedAntifraudRejected:          "Transação rejeitada pelo antifraude",
	CodeDeclined3DSFailed:                  "Falha na autenticação 3D Secure",

	CodeErrorGeneric:                 "Erro genérico",
	CodeErrorAlreadyReversed:         "Transação já estornada",
	CodeErrorPaymentMethodNotEnabled: "Meio de pagamento não habilitado",
	CodeErrorInvalidTransaction:      "Transação inválida",
	CodeErrorInvalidAmount:           "Valor inválido",
	CodeErrorUnauthorized:            "Não autorizado",
	CodeErrorAcquirerTimeout:         "Timeout com a adquirente",
	CodeErrorAcquirerError:           "Erro na adquirente",
	CodeErrorInvalidCardNumber:       "Número do cartão inválido",
	CodeErrorInvalidCVV:              "CVV inválido",
	CodeErrorAuthenticationFailed:    "Falha na autenticação",
	CodeErrorCanceledTransaction:     "Transação cancelada",
	CodeErrorTransactionNotFound:     "Transação não encontrada",
	CodeErrorInvalidMerchant:         "Estabelecimento inválido",
	CodeErrorInvalidAcquirer:         "Adquirente inválida",
	CodeErrorCommunicationError:      "Erro de comunicação",
	CodeErrorDuplicatedOrderID:       "ID do pedido duplicado",
	CodeErrorCVVRequired:             "CVV obrigatório",
	CodeErrorInvalidMerchantCategory: "Categoria do estabelecimento inválida",
	CodeErrorSplitNotEnabled:         "Split de pagamento não habilitado",
	CodeErrorInvalidSplit:            "Configuração de split inválida",

	CodeTimeoutIssuer:       "Timeout - Emissor não respondeu",
	CodeTimeoutAcquirer:     "Timeout - Adquirente não respondeu",
	CodeIrreversibleDecline: "Recusa irreversível - Não tente novamente",
	CodeSystemError:         "Erro de sistema",
}

// nonRetryable — коды, по которым повтор запрещён. Все остальные коды,
// включая неизвестные, считаются допускающими повтор.
var nonRetryable = map[Code]struct{}{
	CodeDeclinedLostCard:          {},
	CodeDeclinedStolenCard:        {},
	CodeDeclinedSuspectedFraud:    {},
	CodeDeclinedConfirmedFraud:    {},
	CodeDeclinedExpiredCard:       {},
	CodeDeclinedBlockedCard:       {},
	CodeDeclinedInactiveCard:      {},
	CodeDeclinedInvalidCard:       {},
	CodeDeclinedUnregisteredCard:  {},
	CodeDeclinedCardNotEffective:  {},
	CodeDeclinedAntifraudRejected: {},
	CodeDeclined3DSFailed:         {},
	CodeIrreversibleDecline:       {},
	CodeErrorDuplicatedOrderID:    {},
}

// fraudRelated — коды, связанные с мошенничеством.
var fraudRelated = map[Code]struct{}{
	CodeDeclinedSuspectedFraud:    {},
	CodeDeclinedConfirmedFraud:    {},
	CodeDeclinedAntifraudRejected: {},
}

// invalidCard — отказы из-за самой карты: нужна другая карта.
var invalidCard = map[Code]struct{}{
	CodeDeclinedInvalidCard: {},
	CodeDeclinedExpiredCard: {},
	CodeDeclinedBlockedCard: {},
	CodeDeclinedLostCard:    {},
	CodeDeclinedStolenCard:  {},
}
