package notify_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ionenergy/ionctl/internal/notify"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := notify.NewWriter(&buf)

	notify.Error(w, "خطأ تحميل المواقع", "تعذر تحميل المواقع.")
	notify.Success(w, "تم الحفظ", "")

	assert.Equal(t, "[error] خطأ تحميل المواقع: تعذر تحميل المواقع.\n[success] تم الحفظ\n", buf.String())
}

func TestRecorder(t *testing.T) {
	var rec notify.Recorder
	_, ok := rec.Last()
	assert.False(t, ok)

	notify.Warning(&rec, "a", "b")
	notify.Error(&rec, "c", "")

	last, ok := rec.Last()
	assert.True(t, ok)
	assert.Equal(t, notify.KindError, last.Kind)
	assert.Len(t, rec.All(), 2)

	rec.Reset()
	assert.Empty(t, rec.All())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { notify.Error(notify.Discard, "x", "y") })
}
