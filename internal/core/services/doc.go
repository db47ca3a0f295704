// Package services implements the driving ports: ingestion of source
// documents into text artifacts, paged reading with a persistent
// cursor, and library management. Services depend only on the driven
// ports and are wired to concrete adapters by the CLI.
package services
