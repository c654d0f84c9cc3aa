package entity

// Los valores literales coinciden con los que persiste el backend.

// CustomerType forma jurídica del cliente.
type CustomerType string

const (
	CustomerTypeLimited     CustomerType = "有限公司"
	CustomerTypeSoleProprie CustomerType = "个人独资企业"
	CustomerTypePartnership CustomerType = "合伙企业"
	CustomerTypeIndividual  CustomerType = "个体工商户"
)

// CreditRating nivel de crédito tributario.
type CreditRating string

const (
	CreditRatingA CreditRating = "A"
	CreditRatingB CreditRating = "B"
	CreditRatingC CreditRating = "C"
	CreditRatingD CreditRating = "D"
	CreditRatingM CreditRating = "M"
)

// TaxpayerType tipo de contribuyente.
type TaxpayerType string

const (
	TaxpayerGeneral TaxpayerType = "一般纳税人"
	TaxpayerSmall   TaxpayerType = "小规模纳税人"
)

// AccountType tipo de cuenta bancaria corporativa.
type AccountType string

const (
	AccountTypeBasic     AccountType = "基本户"
	AccountTypeGeneral   AccountType = "一般户"
	AccountTypeTemporary AccountType = "临时户"
)

// FeeType periodicidad de cobro de un acuerdo.
type FeeType string

const (
	FeeMonthly   FeeType = "月度"
	FeeQuarterly FeeType = "季度"
	FeeYearly    FeeType = "年度"
)

// AgreementStatus estado de un acuerdo.
type AgreementStatus string

const (
	AgreementActive    AgreementStatus = "有效"
	AgreementExpired   AgreementStatus = "已过期"
	AgreementCancelled AgreementStatus = "已取消"
)

// PaymentMethod forma de cobro.
type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "转账"
	PaymentCash     PaymentMethod = "现金"
	PaymentCheque   PaymentMethod = "支票"
	PaymentOther    PaymentMethod = "其他"
)

// TaskStatus los tres estados de una tarea.
type TaskStatus string

const (
	TaskPending    TaskStatus = "待处理"
	TaskInProgress TaskStatus = "进行中"
	TaskCompleted  TaskStatus = "已完成"
)

// AuditStatus decisión de aprobación de un registro de auditoría.
type AuditStatus string

const (
	AuditPending  AuditStatus = "pending"
	AuditApproved AuditStatus = "approved"
	AuditRejected AuditStatus = "rejected"
)

func (t CustomerType) Valid() bool {
	return oneOf(t, CustomerTypeLimited, CustomerTypeSoleProprie, CustomerTypePartnership, CustomerTypeIndividual)
}

func (r CreditRating) Valid() bool {
	return oneOf(r, CreditRatingA, CreditRatingB, CreditRatingC, CreditRatingD, CreditRatingM)
}

func (t TaxpayerType) Valid() bool { return oneOf(t, TaxpayerGeneral, TaxpayerSmall) }

func (t AccountType) Valid() bool {
	return oneOf(t, AccountTypeBasic, AccountTypeGeneral, AccountTypeTemporary)
}

func (f FeeType) Valid() bool { return oneOf(f, FeeMonthly, FeeQuarterly, FeeYearly) }

func (s AgreementStatus) Valid() bool {
	return oneOf(s, AgreementActive, AgreementExpired, AgreementCancelled)
}

func (m PaymentMethod) Valid() bool {
	return oneOf(m, PaymentTransfer, PaymentCash, PaymentCheque, PaymentOther)
}

func (s TaskStatus) Valid() bool { return oneOf(s, TaskPending, TaskInProgress, TaskCompleted) }

func (s AuditStatus) Valid() bool { return oneOf(s, AuditPending, AuditApproved, AuditRejected) }

func oneOf[T comparable](v T, options ...T) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
