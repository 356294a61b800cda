package intl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
)

func TestLocalizer_Arabic(t *testing.T) {
	l := intl.New("ar")
	title, desc := l.Pair(intl.LocationsLoadFailed)
	assert.Equal(t, "خطأ تحميل المواقع", title)
	assert.Equal(t, "تعذر تحميل المواقع.", desc)

	title, desc = l.Pair(intl.SaveSucceeded)
	assert.Equal(t, "تم الحفظ", title)
	assert.Empty(t, desc)
}

func TestLocalizer_English(t *testing.T) {
	l := intl.New("en")
	assert.Equal(t, "en", l.Locale())
	assert.Equal(t, "Organization name is required!", l.T(intl.OrganizationNameRequired+".Description"))
	assert.Equal(t, "12 rows", l.T(intl.LabelRows, map[string]any{"Count": 12}))
}

func TestLocalizer_UnknownLocaleAndID(t *testing.T) {
	l := intl.New("fr")
	assert.Equal(t, "ar", l.Locale())
	assert.Equal(t, "No.Such.Message", l.T("No.Such.Message"))
	assert.False(t, l.Has("No.Such.Message"))
}

func TestLocalizer_Notify(t *testing.T) {
	var rec notify.Recorder
	l := intl.New("ar")

	l.Notify(&rec, notify.KindError, intl.ReportsFailed)
	l.NotifyWith(&rec, notify.KindError, intl.SaveFailed, "duplicate charger")

	all := rec.All()
	assert.Equal(t, notify.Notification{Kind: notify.KindError, Title: "خطأ التقرير", Description: "تعذر توليد التقرير."}, all[0])
	assert.Equal(t, notify.Notification{Kind: notify.KindError, Title: "لم يتم الحفظ", Description: "duplicate charger"}, all[1])
}

func TestFormatNumbers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"int", intl.FormatInt(18248), "18,248"},
		{"small int", intl.FormatInt(42), "42"},
		{"float", intl.FormatFloat(1234.567, 2), "1,234.57"},
		{"negative float", intl.FormatFloat(-1234.5, 1), "-1,234.5"},
		{"zero precision", intl.FormatFloat(999.6, 0), "1,000"},
		{"amount", intl.FormatAmount(2500), "$2,500.00"},
		{"energy", intl.FormatEnergy(1234.4), "1,234 kWh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
