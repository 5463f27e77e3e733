// Package event provides the synchronous pub/sub bus that wires editor
// activity to observers.
//
// # Topics
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	command.done
//	buffer.switched
//	mark.set
//
// Subscription patterns may end in a wildcard:
//
//	command.*      matches command.done, command.aborted
//	**             matches everything
//
// # Delivery
//
// Delivery is synchronous and in subscription order: Publish runs every
// matching handler to completion on the caller's goroutine before
// returning. The editor's command loop is single-threaded and
// event-driven, so handlers observe a consistent world and never race
// with the operation that published the event.
//
//	bus := event.NewBus()
//	sub := bus.Subscribe("command.*", func(topic event.Topic, payload any) {
//		...
//	})
//	bus.Publish(event.TopicCommandDone, event.CommandDone{...})
//	bus.Unsubscribe(sub)
package event
