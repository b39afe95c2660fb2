/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sampledata fabricates legacy-style datasets for demos and testing
// the enrichment pipeline without uploading real data. Column names use the
// abbreviated conventions typical of mainframe-era schemas (CUST_ID_NBR,
// ORDER_TOTAL_AMT) so the rename suggestions have something to work on.
package sampledata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/dataset"
)

// Dataset kinds supported by Generate.
const (
	KindCustomers    = "customers"
	KindOrders       = "orders"
	KindTransactions = "financial_transactions"
	KindBookings     = "hotel_bookings"
)

// Kinds lists the supported sample dataset kinds.
func Kinds() []string {
	return []string{KindCustomers, KindOrders, KindTransactions, KindBookings}
}

// Generate builds a synthetic dataset of the given kind. The same seed
// always produces the same data.
func Generate(kind string, rows int, seed int64) (*dataset.Dataset, error) {
	if rows < 1 {
		return nil, fmt.Errorf("row count must be at least 1, got %d", rows)
	}
	rng := rand.New(rand.NewSource(seed))

	switch kind {
	case KindCustomers:
		return customers(rng, rows), nil
	case KindOrders:
		return orders(rng, rows), nil
	case KindTransactions:
		return transactions(rng, rows), nil
	case KindBookings:
		return bookings(rng, rows), nil
	default:
		return nil, fmt.Errorf("unknown sample dataset kind %q", kind)
	}
}

var (
	firstNames = []string{"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "David", "Elizabeth", "Carlos", "Sofia", "Wei", "Amara", "Yuki"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Martinez", "Lopez", "Chen", "Okafor", "Tanaka", "Novak"}
	cities     = []string{"Springfield", "Riverton", "Lakewood", "Fairview", "Georgetown", "Ashland", "Milton", "Clayton", "Dayton", "Oxford"}
	states     = []string{"CA", "NY", "TX", "FL", "IL", "WA", "OR", "CO", "GA", "MA"}
	domains    = []string{"example.com", "mail.test", "corp.example.org"}
)

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func amount(rng *rand.Rand, min, max float64) string {
	return fmt.Sprintf("%.2f", min+rng.Float64()*(max-min))
}

func pastDate(rng *rand.Rand, maxDaysAgo int) string {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, -rng.Intn(maxDaysAgo)).Format("2006-01-02")
}

// maybeNull blanks the value with the given probability, simulating the
// incomplete fields every legacy extract has.
func maybeNull(rng *rand.Rand, value string, probability float64) string {
	if rng.Float64() < probability {
		return ""
	}
	return value
}

func build(names []string, rows int, fill func(row int, set func(col int, value string))) *dataset.Dataset {
	columns := make([]dataset.Column, len(names))
	for i, name := range names {
		columns[i] = dataset.Column{Name: name, Values: make([]string, rows)}
	}
	for r := 0; r < rows; r++ {
		fill(r, func(col int, value string) {
			columns[col].Values[r] = value
		})
	}
	return &dataset.Dataset{Columns: columns, RowCount: rows}
}

func customers(rng *rand.Rand, rows int) *dataset.Dataset {
	names := []string{
		"CUST_ID_NBR", "CUST_FNAME", "CUST_LNAME", "CUST_EMAIL_ADDR", "CUST_PHONE_NBR",
		"CUST_CITY_NM", "CUST_STATE_CD", "CUST_BIRTH_DT", "CUST_STATUS_CD",
		"CUST_SEGMENT_CD", "CUST_REG_DT", "CUST_LIFETIME_VAL_AMT", "CUST_MARKETING_OPT_FLG",
	}
	return build(names, rows, func(r int, set func(int, string)) {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)
		set(0, fmt.Sprintf("C%06d", r+1))
		set(1, first)
		set(2, last)
		set(3, maybeNull(rng, fmt.Sprintf("%s.%s@%s", first, last, pick(rng, domains)), 0.05))
		set(4, maybeNull(rng, fmt.Sprintf("(%03d) %03d-%04d", 200+rng.Intn(700), rng.Intn(1000), rng.Intn(10000)), 0.15))
		set(5, pick(rng, cities))
		set(6, pick(rng, states))
		set(7, maybeNull(rng, pastDate(rng, 365*50), 0.1))
		set(8, pick(rng, []string{"A", "I", "S"}))
		set(9, pick(rng, []string{"PREM", "GOLD", "SILV", "BRNZ"}))
		set(10, pastDate(rng, 365*5))
		set(11, amount(rng, 100, 50000))
		set(12, pick(rng, []string{"Y", "N"}))
	})
}

func orders(rng *rand.Rand, rows int) *dataset.Dataset {
	names := []string{
		"ORDER_ID_NBR", "CUST_ID_NBR", "ORDER_DT", "ORDER_STATUS_CD", "ORDER_TOTAL_AMT",
		"ORDER_TAX_AMT", "ORDER_SHIP_AMT", "PAYMENT_METHOD_CD", "SHIP_CITY_NM",
		"SHIP_STATE_CD", "ORDER_CHANNEL_CD",
	}
	return build(names, rows, func(r int, set func(int, string)) {
		set(0, fmt.Sprintf("ORD%08d", r+1))
		set(1, fmt.Sprintf("C%06d", 1+rng.Intn(1000)))
		set(2, pastDate(rng, 365*2))
		set(3, pick(rng, []string{"PEND", "CONF", "SHIP", "DLVR", "CANC"}))
		set(4, amount(rng, 10, 2000))
		set(5, amount(rng, 1, 200))
		set(6, maybeNull(rng, amount(rng, 0, 50), 0.2))
		set(7, pick(rng, []string{"CC", "PP", "BT", "COD"}))
		set(8, pick(rng, cities))
		set(9, pick(rng, states))
		set(10, pick(rng, []string{"WEB", "MOB", "STORE", "PHONE"}))
	})
}

func transactions(rng *rand.Rand, rows int) *dataset.Dataset {
	names := []string{
		"TXN_ID_NBR", "ACCT_ID_NBR", "TXN_DT", "TXN_TYPE_CD", "TXN_AMT",
		"TXN_CURRENCY_CD", "TXN_STATUS_CD", "MERCHANT_NM", "TXN_RISK_SCORE_NBR",
		"TXN_FRAUD_FLG",
	}
	return build(names, rows, func(r int, set func(int, string)) {
		set(0, fmt.Sprintf("TXN%010d", r+1))
		set(1, fmt.Sprintf("ACCT%08d", 1+rng.Intn(5000)))
		set(2, pastDate(rng, 365))
		set(3, pick(rng, []string{"DEB", "CRD", "TRF", "FEE", "INT"}))
		set(4, amount(rng, 1, 10000))
		set(5, pick(rng, []string{"USD", "EUR", "GBP"}))
		set(6, pick(rng, []string{"POSTED", "PENDING", "REVERSED"}))
		set(7, maybeNull(rng, pick(rng, []string{"Acme Stores", "Global Goods", "Corner Market", "Metro Utilities"}), 0.1))
		set(8, fmt.Sprintf("%d", 1+rng.Intn(100)))
		set(9, pick(rng, []string{"Y", "N", "N", "N"}))
	})
}

func bookings(rng *rand.Rand, rows int) *dataset.Dataset {
	names := []string{
		"BKNG_ID_NBR", "PROP_ID_NBR", "GUEST_ID_NBR", "GUEST_EMAIL_ADDR", "BKNG_DT",
		"CHECKIN_DT", "CHECKOUT_DT", "BKNG_STATUS_CD", "PROP_TYPE_CD", "ROOM_RATE_AMT",
		"BKNG_TOTAL_AMT", "COMMISSION_PCT", "CHANNEL_CD", "CANCEL_POLICY_CD",
	}
	return build(names, rows, func(r int, set func(int, string)) {
		base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		checkin := base.AddDate(0, 0, rng.Intn(180)-90)
		nights := 1 + rng.Intn(14)
		set(0, fmt.Sprintf("BK%010d", r+1))
		set(1, fmt.Sprintf("PROP%06d", 1+rng.Intn(10000)))
		set(2, fmt.Sprintf("G%08d", 1+rng.Intn(50000)))
		set(3, maybeNull(rng, fmt.Sprintf("%s.%s@%s", pick(rng, firstNames), pick(rng, lastNames), pick(rng, domains)), 0.1))
		set(4, checkin.AddDate(0, 0, -(1+rng.Intn(90))).Format("2006-01-02"))
		set(5, checkin.Format("2006-01-02"))
		set(6, checkin.AddDate(0, 0, nights).Format("2006-01-02"))
		set(7, pick(rng, []string{"CONF", "PEND", "CANC", "NOSH", "AMND"}))
		set(8, pick(rng, []string{"HOTEL", "APART", "HOSTEL", "VILLA", "RESORT"}))
		set(9, amount(rng, 40, 900))
		set(10, amount(rng, 40, 12600))
		set(11, fmt.Sprintf("%.1f", 5+rng.Float64()*20))
		set(12, pick(rng, []string{"DIRECT", "OTA", "GDS", "AGENT", "MOBILE"}))
		set(13, pick(rng, []string{"FREE", "NONREF", "PARTIAL", "FLEXI"}))
	})
}
