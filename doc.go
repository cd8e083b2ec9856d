// Package allocation computes the aggregate expected return and risk of an
// asset allocation: a set of named asset classes, each with an expected
// return, a risk (standard deviation) and a correlation to every other class,
// and an amount invested in each of them, net of a management fee.
//
// The core functionalities include:
//   - Store: the ordered set of asset classes, the amount invested in each,
//     the fee, and the symmetric correlation matrix between classes.
//   - Aggregation: pure functions over a Store computing the total
//     investment, the weighted expected return and the mean-variance risk.
//   - Session: the two editing modes of an allocation table, by absolute
//     amounts or by percentage ratios of a total, kept in sync.
//   - Snapshot: a human-readable (JSON or YAML) description of a session,
//     replayed through the same validation rules as interactive edits.
//
// Nothing in this package panics on user input: rejected edits return an
// error and leave the state untouched.
//
// This package serves as the foundational logic for the `aa` command-line
// tool.
package allocation
