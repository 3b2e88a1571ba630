// Package engine derives holdings, realized profit/loss, and summary books
// from a flat list of buy/sell transactions.
//
// All functions are pure: they read the transaction slice they are given,
// allocate their own results, and keep no state between calls. Concurrent
// calls over the same slice are safe. Every monetary or quantity total is
// rounded to two decimal places at the point it is updated, so a parent
// total always equals the sum of its already-rounded children.
package engine
