package checkout

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const randomDigits = 6

// NewReference builds a client-generated transaction reference in the
// form QS-<base36 timestamp>-<base36 random>. The gateway echoes it
// back on success, but the echoed value is what gets displayed.
func NewReference() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	max := int64(1)
	for i := 0; i < randomDigits; i++ {
		max *= 36
	}
	random := strconv.FormatInt(rand.Int63n(max), 36)
	for len(random) < randomDigits {
		random = "0" + random
	}

	return strings.ToUpper(fmt.Sprintf("QS-%s-%s", timestamp, random))
}
