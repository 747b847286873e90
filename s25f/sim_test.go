package s25f

// simTransport emulates just enough of an S25FS chip to exercise the
// driver: an addressed register file, a scripted queue of status
// samples, and recorders for every frame, erase, and reset it sees.
type simTransport struct {
	regs map[uint32]byte
	rdid []byte

	// status is consumed one sample per read; when empty the chip
	// reports ready.
	status []Status

	// dropWrites makes register writes land nowhere, for verification
	// failure scenarios.
	dropWrites bool

	cmdErr   error
	chainErr error

	frames [][]byte
	erases []uint32
	resets []byte
}

func newSim() *simTransport {
	return &simTransport{
		regs: map[uint32]byte{},
	}
}

func (s *simTransport) nextStatus() Status {
	if len(s.status) == 0 {
		return 0
	}
	sr := s.status[0]
	s.status = s.status[1:]
	return sr
}

func (s *simTransport) Command(cmd Command) ([]byte, error) {
	if s.cmdErr != nil {
		return nil, s.cmdErr
	}
	s.frames = append(s.frames, cmd.Tx)

	switch cmd.Tx[0] {
	case opReadStatus:
		return []byte{byte(s.nextStatus())}, nil
	case opReadAnyReg:
		addr := uint32(cmd.Tx[1])<<16 | uint32(cmd.Tx[2])<<8 | uint32(cmd.Tx[3])
		return []byte{s.regs[addr]}, nil
	case opReadID:
		out := make([]byte, cmd.Rx)
		copy(out, s.rdid)
		return out, nil
	}
	return make([]byte, cmd.Rx), nil
}

func (s *simTransport) Chain(chain Chain) error {
	if s.chainErr != nil {
		return s.chainErr
	}
	for _, cmd := range chain {
		s.frames = append(s.frames, cmd.Tx)
	}

	first := chain[0].Tx[0]
	if first == opResetEnable {
		s.resets = append(s.resets, chain[1].Tx[0])
		// a reset clears the volatile fault condition
		s.status = nil
		return nil
	}

	// write enable followed by the state-changing command
	op := chain[1].Tx
	switch op[0] {
	case opWriteAnyReg:
		if !s.dropWrites {
			addr := uint32(op[1])<<16 | uint32(op[2])<<8 | uint32(op[3])
			s.regs[addr] = op[4]
		}
	case opBlockErase:
		s.erases = append(s.erases, uint32(op[1])<<16|uint32(op[2])<<8|uint32(op[3]))
	}
	return nil
}

// statusReads counts how many times the status register was sampled.
func (s *simTransport) statusReads() int {
	n := 0
	for _, f := range s.frames {
		if f[0] == opReadStatus {
			n++
		}
	}
	return n
}

// registerReads counts reads of the given addressed register.
func (s *simTransport) registerReads(addr uint32) int {
	n := 0
	for _, f := range s.frames {
		if f[0] != opReadAnyReg {
			continue
		}
		if uint32(f[1])<<16|uint32(f[2])<<8|uint32(f[3]) == addr {
			n++
		}
	}
	return n
}
