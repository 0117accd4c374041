package errman

// LinkWriter is the slice of the expression stream that the bridge needs:
// enough to assign the failure parameters on the host side and to export the
// catalog. *mlink.Stream satisfies it.
type LinkWriter interface {
	PutFunction(head string, nargs int) error
	PutSymbol(name string) error
	// Put writes one scalar or string parameter of any supported Go type.
	Put(value any) error

	NewPacket() error
	EndPacket() error
	Flush() error

	// Process hands the written expression to the host evaluator.
	Process() error
	// DrainReturnPacket discards a pending reply packet, if one is waiting.
	DrainReturnPacket() error
}

// Throw ships params to the host's failure-parameters symbol through w and
// returns the registry entry for name. Parameters are fully written and the
// reply drained before the error is returned, so the host never observes
// stale parameters. An unknown name fails with ErrorManagerThrowNameError
// and nothing is written.
func (r *Registry) Throw(w LinkWriter, name string, params ...any) error {
	e, err := r.Find(name)
	if err != nil {
		return err
	}
	if err := r.shipParams(w, params); err != nil {
		return err
	}
	return e
}

// ThrowByID is the id-lookup variant of Throw; it fails with
// ErrorManagerThrowIdError if the id is not registered.
func (r *Registry) ThrowByID(w LinkWriter, id int, params ...any) error {
	e, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if err := r.shipParams(w, params); err != nil {
		return err
	}
	return e
}

// shipParams evaluates symbol = {params...} on the host and drains the reply.
func (r *Registry) shipParams(w LinkWriter, params []any) error {
	if err := w.PutFunction("EvaluatePacket", 1); err != nil {
		return err
	}
	if err := w.PutFunction("Set", 2); err != nil {
		return err
	}
	if err := w.PutSymbol(r.symbol); err != nil {
		return err
	}
	if err := w.PutFunction("List", len(params)); err != nil {
		return err
	}
	for _, p := range params {
		if err := w.Put(p); err != nil {
			return err
		}
	}
	if err := w.Process(); err != nil {
		return err
	}
	return w.DrainReturnPacket()
}

// SendRegisteredErrors writes the whole catalog to w as an association of
// name -> {id, message}, for the host's diagnostic entry point.
func (r *Registry) SendRegisteredErrors(w LinkWriter) error {
	if err := w.NewPacket(); err != nil {
		return err
	}
	if err := w.PutFunction("Association", r.Len()); err != nil {
		return err
	}
	for _, name := range r.order {
		e := r.entries[name]
		if err := w.PutFunction("Rule", 2); err != nil {
			return err
		}
		if err := w.Put(e.name); err != nil {
			return err
		}
		if err := w.PutFunction("List", 2); err != nil {
			return err
		}
		if err := w.Put(e.id); err != nil {
			return err
		}
		if err := w.Put(e.message); err != nil {
			return err
		}
	}
	if err := w.EndPacket(); err != nil {
		return err
	}
	return w.Flush()
}
