package main

import (
	"strconv"
	"strings"
)

type anglesFlag []float64

func (a *anglesFlag) String() string {
	parts := make([]string, len(*a))
	for i, x := range *a {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (a *anglesFlag) Set(s string) error {
	*a = nil
	for _, p := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return err
		}
		*a = append(*a, v)
	}
	return nil
}
