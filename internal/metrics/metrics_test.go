package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_ExposesNotifyCounters(t *testing.T) {
	NotifyDecoded.Inc()
	NotifyRejected.WithLabelValues("prevhash").Inc()
	NotifySent.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"stratum_notify_decoded_total",
		`stratum_notify_rejected_total{reason="prevhash"}`,
		"stratum_notify_sent_total",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
