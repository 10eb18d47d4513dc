// Package influxdb records text input values and automation runs in
// InfluxDB.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, non-blocking batched writes and health monitoring.
//
// Measurements:
//   - text_input: tags entity_id, mode; fields value, length
//   - automation_run: tags automation_id, status; fields duration_ms, actions
//
// Every point also carries a "node" tag with the node name.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB, cfg.Node.Name)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteTextValue("greeting", "AUTO", "hello")
package influxdb
