package handlers

import (
	"net/http"
	"strconv"
)

func formUint(r *http.Request, key string) uint {
	v, _ := strconv.ParseUint(r.FormValue(key), 10, 64)
	return uint(v)
}

func formFloat(r *http.Request, key string) float64 {
	v, _ := strconv.ParseFloat(r.FormValue(key), 64)
	return v
}

func queryUint(r *http.Request, key string) uint {
	v, _ := strconv.ParseUint(r.URL.Query().Get(key), 10, 64)
	return uint(v)
}

func queryInt(r *http.Request, key string, def int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
