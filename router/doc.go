// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the route table.

Uses Go 1.22+ method-pattern routing on http.ServeMux. Every route is
wrapped in the request-logging middleware; CORS is applied to the whole
mux in main.

	mux := router.NewRouter(store, cfg)
	http.ListenAndServe(addr, middleware.CORS(mux))
*/
package router
