package hal

type stubEEPROM struct{}

func (stubEEPROM) SizeBytes() uint32 { return 0 }

func (stubEEPROM) ReadAt(p []byte, off uint32) (int, error) {
	_ = p
	_ = off
	return 0, ErrNotImplemented
}

func (stubEEPROM) WriteAt(p []byte, off uint32) (int, error) {
	_ = p
	_ = off
	return 0, ErrNotImplemented
}

func (stubEEPROM) Commit() error { return ErrNotImplemented }
