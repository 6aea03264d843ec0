// package meshtools provides CPU-side helpers for preparing vertex data before it is
// staged on a mesh: expanding indexed data into the non-indexed form the mesh core
// draws, and generating the per-vertex index attribute used by the wireframe
// visualization path.
package meshtools

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cockroachdb/errors"
)

// duplicateParallelThreshold is the output size in bytes above which Duplicate fans
// out across the worker pool instead of copying serially.
const duplicateParallelThreshold = 1 << 20

var (
	poolOnce sync.Once
	pool     worker.DynamicWorkerPool
)

func expandPool() worker.DynamicWorkerPool {
	poolOnce.Do(func() {
		pool = worker.NewDynamicWorkerPool(runtime.NumCPU(), 256, time.Second)
	})
	return pool
}

// Duplicate expands indexed vertex data into a non-indexed stream: for every index i
// the stride-sized record at src[i*stride] is appended to the output. The result has
// one record per index and draws correctly on a non-indexed mesh with the original
// triangle order preserved.
//
// Large expansions are split across a shared worker pool; the output is identical
// either way.
//
// Parameters:
//   - indices: the vertex indices to expand
//   - stride: the size of one vertex record in bytes
//   - src: the indexed vertex data, a whole number of stride-sized records
//
// Returns:
//   - []byte: the expanded vertex data, len(indices)*stride bytes
//   - error: error if stride is invalid, src is not a whole number of records, or an
//     index is out of range
func Duplicate(indices []uint32, stride int, src []byte) ([]byte, error) {
	if stride <= 0 {
		return nil, errors.Newf("stride must be positive, got %d", stride)
	}
	if len(src)%stride != 0 {
		return nil, errors.Newf("source length %d is not a multiple of stride %d", len(src), stride)
	}
	recordCount := uint32(len(src) / stride)
	for _, idx := range indices {
		if idx >= recordCount {
			return nil, errors.Newf("index %d out of range for %d records", idx, recordCount)
		}
	}

	out := make([]byte, len(indices)*stride)
	if len(out) < duplicateParallelThreshold {
		duplicateRange(out, indices, stride, src, 0, len(indices))
		return out, nil
	}

	p := expandPool()
	chunk := (len(indices) + runtime.NumCPU() - 1) / runtime.NumCPU()

	// Workers are reused across calls; a WaitGroup provides per-call barrier sync.
	var wg sync.WaitGroup
	for start := 0; start < len(indices); start += chunk {
		end := min(start+chunk, len(indices))
		wg.Add(1)
		lo, hi := start, end
		p.SubmitTask(worker.Task{
			ID: lo,
			Do: func() (any, error) {
				defer wg.Done()
				duplicateRange(out, indices, stride, src, lo, hi)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return out, nil
}

// duplicateRange copies records for indices[lo:hi] into their slots in out.
// Ranges are disjoint per worker, so no synchronization is needed on out.
func duplicateRange(out []byte, indices []uint32, stride int, src []byte, lo, hi int) {
	for i := lo; i < hi; i++ {
		srcOff := int(indices[i]) * stride
		copy(out[i*stride:(i+1)*stride], src[srcOff:srcOff+stride])
	}
}

// VertexIndices generates the 0..n-1 running vertex index as a float attribute.
// Wireframe rendering without geometry shaders derives barycentric coordinates from
// this attribute when the built-in vertex index cannot be used.
//
// Parameters:
//   - n: the number of vertices
//
// Returns:
//   - []float32: the values 0 through n-1
func VertexIndices(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}
