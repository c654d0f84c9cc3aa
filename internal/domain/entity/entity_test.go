package entity

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	l, err := ParseIDList(" 1, 5,,8 ")
	require.NoError(t, err)
	assert.Equal(t, IDList{1, 5, 8}, l)
	assert.Equal(t, "1,5,8", l.String())
	assert.True(t, l.Contains(5))
	assert.False(t, l.Contains(2))

	_, err = ParseIDList("1,x")
	assert.Error(t, err)
}

func TestPerson_IDListViajaComoTexto(t *testing.T) {
	var p Person
	raw := `{"id":4,"name":"李华","phone":"138","id_card":"5001","service_customer_ids":"3,9","investor_customer_ids":""}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, IDList{3, 9}, p.ServiceCustomerIDs)
	assert.Empty(t, p.InvestorCustomerIDs)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"service_customer_ids":"3,9"`)
}

func TestAgreement_ImporteComoNumero(t *testing.T) {
	NumericDecimals()
	a := Agreement{Amount: decimal.RequireFromString("1200.50"), FeeType: FeeMonthly}
	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"amount":1200.5`)
}

func TestAgreement_ActiveOn(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Agreement{Status: AgreementActive, StartDate: start, EndDate: start.AddDate(1, 0, -1)}
	assert.True(t, a.ActiveOn(start.AddDate(0, 6, 0)))
	assert.False(t, a.ActiveOn(start.AddDate(2, 0, 0)))

	a.Status = AgreementCancelled
	assert.False(t, a.ActiveOn(start.AddDate(0, 6, 0)))
}

func TestTask_Overdue(t *testing.T) {
	due := time.Now().Add(-time.Hour)
	task := Task{Status: TaskInProgress, DueDate: &due}
	assert.True(t, task.Overdue(time.Now()))
	task.Status = TaskCompleted
	assert.False(t, task.Overdue(time.Now()))
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(RoleSuperAdmin, RoleManager))
	assert.True(t, HasRole(RoleManager, RoleManager))
	assert.False(t, HasRole(RoleServicePerson, RoleManager))
	assert.False(t, HasRole(RoleManager, RoleSuperAdmin))
	assert.True(t, HasRole("", ""))
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, TaskStatus("进行中").Valid())
	assert.False(t, TaskStatus("in_progress").Valid())
	assert.True(t, FeeType("季度").Valid())
	assert.True(t, CustomerType("合伙企业").Valid())
	assert.False(t, AuditStatus("done").Valid())
}
