package models

import "time"

// ChargeEvent records a detected battery charge. Only the most recent
// detection during a log scan is retained; later detections overwrite
// earlier ones.
type ChargeEvent struct {
	Timestamp time.Time
	Level     int
}
