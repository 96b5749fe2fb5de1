// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod builds the router's MethodNotAllowed handler. Chi answers
// 405 when a path matches but the method does not; this handler answers 404
// instead, so probing an endpoint with the wrong method reveals nothing
// about which paths exist. Requests whose method IS registered are handed
// back to the router's normal pipeline.
//
// Register it after all routes:
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
//
// Pattern matching is exact against [http.Request.URL.Path]; parameterised
// segments are not expanded.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
