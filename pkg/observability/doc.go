/*
Package observability provides tools for monitoring the casefile engine.

It turns engine lifecycle hooks into Prometheus metrics and lets several hook
sets (metrics, audit logging, custom callbacks) observe the same engine.
*/
package observability
