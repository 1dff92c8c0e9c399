// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration for the Forkcast server.

Configuration comes from CLI flags with environment variable fallbacks:

  - PORT (-p): server port (default: 4117)
  - STORE_DRIVER (-t): postgres, sqlite, or memory (default: sqlite)
  - STORE_DSN (-d): store connection string (default: forkcast.db for sqlite)
  - SEARCH_URL (-search-url): restaurant search API endpoint (optional)
  - SEARCH_API_KEY (-search-key): search API bearer key (prefer env)
  - -rate / -burst: per-client rate limit settings

When SEARCH_URL is unset the server serves fixture candidates, which is
the intended mode for local development.
*/
package cliparse
