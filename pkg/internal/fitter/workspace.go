package fitter

import "sync"

// workspace is the scratch state of one fit. It is owned by a single call
// between getWorkspace and putWorkspace.
type workspace struct {
	params   []float64
	model    []float64
	shifted  []float64
	resid    []float64
	jac      []float64
	normal   [][]float64
	normalBk []float64
	rhs      []float64
	delta    []float64
}

var workspacePool = sync.Pool{
	New: func() any { return &workspace{} },
}

func getWorkspace(n, p int) *workspace {
	ws := workspacePool.Get().(*workspace)
	ws.reset(n, p)
	return ws
}

func putWorkspace(ws *workspace) {
	workspacePool.Put(ws)
}

func grow(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = 0
	}
	return s
}

func (ws *workspace) reset(n, p int) {
	ws.params = grow(ws.params, p)
	ws.model = grow(ws.model, n)
	ws.shifted = grow(ws.shifted, n)
	ws.resid = grow(ws.resid, n)
	ws.jac = grow(ws.jac, n*p)
	ws.normalBk = grow(ws.normalBk, p*p)
	ws.rhs = grow(ws.rhs, p)
	ws.delta = grow(ws.delta, p)

	if len(ws.normal) != p {
		ws.normal = make([][]float64, p)
	}
	for i := range ws.normal {
		ws.normal[i] = ws.normalBk[i*p : (i+1)*p]
	}
}
