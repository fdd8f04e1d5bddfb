/*
Package observability provides Prometheus metrics for the mystem session manager.

Metrics are fed from domain.LifecycleHooks emitted by the worker session and
from request outcomes recorded by the analyzer facade. Every method is safe to
call on a nil *Metrics, so callers never need to guard optional wiring.
*/
package observability
