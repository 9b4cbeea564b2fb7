// Package random provides crypto/rand backed random string generation.
package random

import (
	"crypto/rand"
	"math/big"
)

var alnum []rune

func init() {
	for i := 0; i < 10; i++ {
		alnum = append(alnum, rune('0'+i))
	}
	for i := 0; i < 26; i++ {
		alnum = append(alnum, rune('a'+i))
	}
	for i := 0; i < 26; i++ {
		alnum = append(alnum, rune('A'+i))
	}
}

// Seq generates a random alphanumeric string of length n.
func Seq(n int) string {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alnum))))
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		runes[i] = alnum[idx.Int64()]
	}
	return string(runes)
}

// Num generates a random integer between 0 and n-1.
func Num(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return int(r.Int64())
}
