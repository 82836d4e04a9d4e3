package utils

import (
	"fmt"
	"time"
)

func GenSaleNo(seq uint, t time.Time) string {
	return fmt.Sprintf("SL-%d-%06d", t.Year(), seq)
}

func GenEstimateNo(seq uint, t time.Time) string {
	return fmt.Sprintf("ES-%d-%06d", t.Year(), seq)
}
