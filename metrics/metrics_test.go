package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveApply(t *testing.T) {
	ok := ImagesCounter.WithLabelValues("test", "binary", StatusOK)
	failed := ImagesCounter.WithLabelValues("test", "binary", StatusError)
	before, beforeFailed := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveApply("test", "binary", 3*time.Millisecond, nil)
	ObserveApply("test", "binary", 0, errors.New("boom"))
	ObserveApply("test", "binary", 5*time.Millisecond, nil)

	assert.Equal(t, before+2, testutil.ToFloat64(ok))
	assert.Equal(t, beforeFailed+1, testutil.ToFloat64(failed))
}

func TestObserveEncode(t *testing.T) {
	ObserveEncode("png", 2048)
	assert.Equal(t, 1, testutil.CollectAndCount(EncodedBytesHist))
}
