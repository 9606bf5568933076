package domain

import (
	"math"
	"strconv"
)

type ID int64

func ParseID(raw string) (ID, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return ID(id), true
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Amount int64

// MaxAmount is where Add and Multiply saturate instead of wrapping.
const MaxAmount = Amount(math.MaxInt64)

func (a Amount) Add(b Amount) Amount {
	if b > 0 && a > MaxAmount-b {
		return MaxAmount
	}
	return a + b
}

// Multiply expects a non-negative amount and quantity, as prices and line
// quantities are.
func (a Amount) Multiply(quantity int) Amount {
	if a <= 0 || quantity <= 0 {
		return 0
	}
	if int64(quantity) > int64(MaxAmount/a) {
		return MaxAmount
	}
	return a * Amount(quantity)
}

func (a Amount) IsPositive() bool {
	return a > 0
}

type Event interface {
	GetName() string
	GetEntityName() string
}
