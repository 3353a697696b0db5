package models

// DatabaseMaxCounter records, per remote instance and per partition filter,
// the highest counter value from that instance this device has already fully
// incorporated. It lets a device ask a peer for "everything from instance X
// on filter F with counter greater than MaxCounter" instead of re-pulling
// known data.
//
// An absent row reads as MaxCounter == 0. The value is advanced only after a
// whole delta batch for the (instance, filter) key has been durably merged —
// never partially, so a crash between merging and advancing leaves the
// watermark behind and at-least-once redelivery stays safe.
type DatabaseMaxCounter struct {
	InstanceID string `json:"instance_id"`
	Filter     string `json:"filter"`
	MaxCounter int64  `json:"max_counter"`
}
