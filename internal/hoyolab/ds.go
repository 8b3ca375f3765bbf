package hoyolab

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"
)

// dsSalt is the overseas web salt for the game record endpoints.
const dsSalt = "6s25p5ox5y14umn1p61aqyyvbvvl3lrt"

const dsAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateDS builds the dynamic secret header value "t,r,md5".
func GenerateDS(now time.Time) string {
	r := make([]byte, 6)
	for i := range r {
		r[i] = dsAlphabet[rand.Intn(len(dsAlphabet))]
	}
	return dsWith(now.Unix(), string(r))
}

func dsWith(t int64, r string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("salt=%s&t=%d&r=%s", dsSalt, t, r)))
	return fmt.Sprintf("%d,%s,%s", t, r, hex.EncodeToString(sum[:]))
}
