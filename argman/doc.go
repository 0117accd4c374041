// Package argman manages the host's call-argument array at an extension
// entry point: typed access to incoming arguments, container adoption in any
// passing mode, result delivery, and the integer return contract.
//
// Run wraps a handler and maps its outcome to the host's convention: nil
// becomes the NoError code, a registry error becomes its id, anything else
// falls back to FunctionError. Cancellation is a result the handler checks,
// not an exception: call CheckAbort at convenient points and return what it
// returns.
//
//	func Echo(m *argman.Manager) error {
//		in, err := m.NumericArray(0, container.Automatic)
//		if err != nil {
//			return err
//		}
//		out, err := in.Clone()
//		if err != nil {
//			return err
//		}
//		m.SetNumericArray(out)
//		return nil
//	}
//
//	code := argman.Run(ld, args, &res, Echo)
package argman
