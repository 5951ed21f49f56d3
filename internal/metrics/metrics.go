package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tictactoe"

// Move results used as the "result" label.
const (
	ResultOngoing     = "ongoing"
	ResultWin         = "win"
	ResultTie         = "tie"
	ResultInvalidGame = "invalid_game"
	ResultInvalidMark = "invalid_mark"
	ResultInvalidMove = "invalid_move"
	ResultError       = "error"
)

type Metrics struct {
	gamesCreated prometheus.Counter
	moves        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_created_total",
			Help:      "Total number of games created.",
		}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Total number of submitted moves by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.gamesCreated, m.moves)

	return m
}

func (that *Metrics) GameCreated() {
	that.gamesCreated.Inc()
}

func (that *Metrics) MoveSubmitted(result string) {
	that.moves.WithLabelValues(result).Inc()
}
