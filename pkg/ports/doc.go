/*
Package ports defines the driven ports (interfaces) around the mystem session manager.

These interfaces decouple the analysis core from its outer surfaces and
storage backends, so the HTTP and MCP adapters can serve any Analyzer and the
facade can cache worker responses in memory or in Redis.

# Key Interfaces

  - Analyzer: turns raw text into per-token morphological results.
  - ResponseCache: stores raw worker response lines keyed by request digest.
*/
package ports
