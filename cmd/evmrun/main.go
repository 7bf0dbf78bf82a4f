package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/ethcore/evmcore/vm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses args, executes the given bytecode, and returns the process
// exit code. Split out from main so it's directly testable.
func run(args []string) int {
	fs := flag.NewFlagSet("evmrun", flag.ContinueOnError)
	bytecode := fs.String("bytecode", "", "hex-encoded bytecode to execute (0x prefix optional)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if *bytecode == "" {
		fmt.Fprintln(os.Stderr, "Error: -bytecode is required")
		return 2
	}

	code, err := decodeBytecode(*bytecode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid bytecode: %v\n", err)
		return 2
	}

	log.Info("executing bytecode", "bytes", len(code))

	m := vm.New(code)
	status := m.Run()

	log.Info("execution finished", "status", status.String())

	switch status {
	case vm.StatusStopped:
		return 0
	case vm.StatusReturned:
		fmt.Printf("0x%x\n", m.ReturnData())
		return 0
	case vm.StatusReverted:
		log.Warn("execution reverted", "return_data", fmt.Sprintf("0x%x", m.ReturnData()))
		return 1
	case vm.StatusErrored:
		log.Error("execution faulted", "err", m.Err())
		return 1
	default:
		return 1
	}
}

// decodeBytecode accepts hex with or without the 0x prefix.
func decodeBytecode(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return hexutil.Decode(s)
	}
	return hexutil.Decode("0x" + s)
}
