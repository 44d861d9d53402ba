package usecases

// MetricsRecorder receives business events worth counting
type MetricsRecorder interface {
	VendorApproval(result string)
	VendorRejection()
	Upload(result string)
	PromoValidation(result string)
}

// NoopMetrics discards every event
type NoopMetrics struct{}

func (NoopMetrics) VendorApproval(string) {}
func (NoopMetrics) VendorRejection() {}
func (NoopMetrics) Upload(string) {}
func (NoopMetrics) PromoValidation(string) {}

func metricsOrNoop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return NoopMetrics{}
	}
	return m
}
