package store

import (
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/splstore/splstore/internal/runtime"
)

// Processor decodes store instructions and dispatches them to the matching
// handler. One instance serves one program id; it holds no state of its own
// beyond the injected host collaborators.
type Processor struct {
	programID solana.PublicKey
	host      runtime.Host
	logger    *zap.Logger
}

func NewProcessor(programID solana.PublicKey, host runtime.Host, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		programID: programID,
		host:      host,
		logger:    logger,
	}
}

// ProgramID returns the program identity this processor validates ownership
// against.
func (p *Processor) ProgramID() solana.PublicKey {
	return p.programID
}

// Process runs one instruction against the supplied positional account list.
// The first failing check aborts the whole operation; the host discards any
// mutations made before the failure.
func (p *Processor) Process(accounts []*runtime.Account, data []byte) error {
	instr, err := DecodeInstruction(data)
	if err != nil {
		return err
	}

	switch in := instr.(type) {
	case *Initialize:
		return p.initialize(accounts, in)
	case *Buy:
		return p.buy(accounts, in)
	case *Sell:
		return p.sell(accounts, in)
	case *UpdatePrice:
		return p.updatePrice(accounts, in)
	default:
		return ErrMalformedInstruction
	}
}
