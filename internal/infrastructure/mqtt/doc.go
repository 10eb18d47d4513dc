// Package mqtt provides MQTT client connectivity for a text input node.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Availability via Last Will and Testament
//
// # Topics
//
// Every node owns a topic prefix (the node name unless mqtt.topic_prefix is
// set). Entities publish on {prefix}/{component}/{object_id}/state and
// accept values on {prefix}/{component}/{object_id}/command. Home Assistant
// discovery configs go to {discovery_prefix}/{component}/{node}/{object_id}/config.
//
// # Usage
//
//	topics := mqtt.NewTopics(cfg.StateTopicPrefix(), cfg.MQTT.DiscoveryPrefix)
//	client, err := mqtt.Connect(cfg.MQTT, topics)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(topics.EntityCommand("text", "greeting"), 1,
//	    func(topic string, payload []byte) error {
//	        return input.Set(ctx, string(payload))
//	    })
package mqtt
