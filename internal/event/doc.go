// Package event provides a publish/subscribe bus with wildcard topic
// subscriptions.
//
// # Buses
//
// A Bus delivers a typed payload to the listeners registered on a literal
// channel name. LocalBus is the in-memory implementation: Send runs the
// listeners of a channel synchronously, recovers their panics and joins
// their errors.
//
// # Topic subscriptions
//
// TopicBus sits in front of any Bus and adds AMQP style wildcard patterns.
// Topics are words separated by a delimiter, usually ".":
//
//	quick.orange.rabbit
//	lazy.brown.fox
//
// A subscription pattern may use two wildcard words:
//
//	*.orange.*   - "*" matches exactly one word
//	lazy.#       - "#" matches zero or more words
//	#.rabbit     - "#" may appear anywhere in the pattern
//
// Each pattern is registered on the underlying bus as a channel of the same
// name. Publishing a concrete topic finds every registered pattern matching
// it and sends the payload once per pattern on that pattern's channel:
//
//	bus := event.NewLocalBus[Order]()
//	topics, err := event.NewTopicBus[Order](bus, event.TopicConfig{Delimiter: "."})
//	if err != nil {
//	    return err
//	}
//
//	_, err = topics.SubscribeFunc("orders.*.created", func(ctx context.Context, pattern string, o Order) error {
//	    return handle(o)
//	})
//
//	err = topics.Publish(ctx, "orders.eu.created", order)
//
// Subscribing the same pattern twice registers it twice; it must be
// unsubscribed twice, spelled exactly as subscribed, before it stops
// matching.
//
// # Observability
//
// Both LocalBus and TopicBus accept a zerolog.Logger. TopicBus exports
// prometheus counters for published topics, unmatched topics and deliveries,
// and a gauge with the number of pattern registrations, once a registerer is
// configured with WithRegisterer.
package event
