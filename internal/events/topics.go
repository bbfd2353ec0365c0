package events

const (
	// All cart activity flows through one topic; consumers switch on the
	// envelope's event_type.
	TopicCartActivity = "cart.activity"
)

// Partition key = cart id, so events for one cart keep their order.
func PartitionKey(cartID string) []byte { return []byte(cartID) }
