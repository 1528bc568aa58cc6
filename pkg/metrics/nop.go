package metrics

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordUpstream(string, bool, float64) {}
func (Nop) RecordCache(string, bool)             {}
func (Nop) RecordError(string)                   {}
func (Nop) SetSubscribers(int)                   {}
func (Nop) RecordBroadcast(string)               {}
func (Nop) RecordLatency(string, float64)        {}
