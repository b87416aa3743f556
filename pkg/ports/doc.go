/*
Package ports defines the driven ports (interfaces) of the lockstep engine.

These interfaces decouple the tick engine from external implementations, so the
same configuration can run against an MQTT broker, Redis Pub/Sub or an in-process
bus.

# Key Interfaces

  - Transport: topic based publish/subscribe boundary used by the bridge adapters.
  - StateReader: read-only access to the latest committed configuration state.
*/
package ports
