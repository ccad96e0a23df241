package island

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"

	"go.uber.org/zap"

	"github.com/archipelab/isle/algorithm"
	"github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/population"
)

// PipeIsland evolves an isolated copy of the island's state in a worker
// goroutine. The algorithm and population are serialized across the
// isolation barrier, the worker evolves its own copies, and the result
// comes back through a pipe as a status message. A failure inside the
// worker is reported as a message carrying the error text, never as a
// shared panic.
//
// Both the algorithm's UDA and the population's UDP must be serializable;
// types registered through a descriptor registry are.
type PipeIsland struct{}

// message is the worker-to-parent protocol: a status flag, an error
// message, and the evolved state.
type message struct {
	Status     int
	Err        string
	Algorithm  *algorithm.Algorithm
	Population *population.Population
}

func (PipeIsland) RunEvolve(ctx context.Context, isl *Island) error {
	algo := isl.Algorithm()
	pop := isl.Population()

	// The isolation barrier: the worker only ever sees deep copies.
	workAlgo, workPop, err := cloneState(algo, pop)
	if err != nil {
		return err
	}

	r, w := io.Pipe()
	go func() {
		m := evolveWorker(ctx, workAlgo, workPop)
		if err := gob.NewEncoder(w).Encode(&m); err != nil {
			Logger().Debug("worker result encoding failed", zap.Error(err))
			w.CloseWithError(err)
			return
		}
		w.Close()
	}()

	var m message
	if err := gob.NewDecoder(r).Decode(&m); err != nil {
		// Tear down the pipe so the worker's pending writes fail too.
		r.CloseWithError(err)
		return errors.Serialization("decode evolution result", err)
	}
	r.Close()

	if m.Status != 0 {
		return errors.WorkerFailure("the evolution in the isolated worker raised an error: " + m.Err)
	}
	if err := isl.SetAlgorithm(m.Algorithm); err != nil {
		return err
	}
	return isl.SetPopulation(m.Population)
}

func (PipeIsland) Name() string {
	return "Pipe island"
}

func (PipeIsland) ExtraInfo() string {
	return "Isolation: serialized worker"
}

// evolveWorker runs one evolution on the worker's private copies. On error
// the returned message carries the error text and fresh default state, so
// it stays encodable regardless of what failed.
func evolveWorker(ctx context.Context, algo *algorithm.Algorithm, pop *population.Population) message {
	newPop, err := algo.Evolve(ctx, pop)
	if err != nil {
		fallback, _ := algorithm.New(&algorithm.Null{})
		return message{Status: 1, Err: err.Error(), Algorithm: fallback}
	}
	return message{Algorithm: algo, Population: newPop}
}

// cloneState deep-copies the handles through a serialization round-trip.
func cloneState(algo *algorithm.Algorithm, pop *population.Population) (*algorithm.Algorithm, *population.Population, error) {
	var buf bytes.Buffer
	out := message{Algorithm: algo, Population: pop}
	if err := gob.NewEncoder(&buf).Encode(&out); err != nil {
		return nil, nil, errors.Serialization("encode island state", err)
	}
	var in message
	if err := gob.NewDecoder(&buf).Decode(&in); err != nil {
		return nil, nil, errors.Serialization("decode island state", err)
	}
	return in.Algorithm, in.Population, nil
}
