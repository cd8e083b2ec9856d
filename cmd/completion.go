package cmd

import (
	"github.com/etnz/allocation/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the aa command.
//
// Install it with `COMP_INSTALL=1 aa`.
func Completion() *complete.Command {
	snapshots := predict.Or(predict.Files("*.yaml"), predict.Files("*.yml"), predict.Files("*.json"))
	topics, _ := docs.Names()
	topics = append(topics, "*")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"snapshot": snapshots,
			"v":        predict.Nothing,
			"plain":    predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"compute": {
				Flags: map[string]complete.Predictor{
					"f":      snapshots,
					"select": predict.Something,
					"json":   predict.Nothing,
					"c":      predict.Nothing,
				},
			},
			"rebalance": {
				Flags: map[string]complete.Predictor{
					"f":      snapshots,
					"total":  predict.Something,
					"export": predict.Nothing,
				},
			},
			"edit": {
				Flags: map[string]complete.Predictor{
					"f": snapshots,
				},
			},
			"topic": {
				Args: predict.Set(topics),
			},
		},
	}
}
