package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-memory/engine"
	"github.com/wippyai/wasm-memory/memory"
)

func main() {
	var (
		size        = flag.Uint64("size", 0, "Memory size in bytes (overrides -pages)")
		pages       = flag.Uint64("pages", 1, "Memory size in 64KiB pages")
		dataArg     = flag.String("data", "", "Data segments: file[@addr],file2[@addr2]")
		pokeArg     = flag.String("poke", "", "Typed store before output: addr:kind=value")
		peekArg     = flag.String("peek", "", "Typed load: addr:kind (i32,i64,f32,f64)")
		dumpArg     = flag.String("dump", "", "Hex dump region: addr:length")
		interactive = flag.Bool("i", false, "Interactive hex viewer")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		engine.SetLogger(logger)
	}

	mem, err := buildMemory(*size, *pages, *dataArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(mem); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(mem, *pokeArg, *peekArg, *dumpArg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildMemory(size, pages uint64, dataArg string) (*memory.Memory, error) {
	var (
		mem *memory.Memory
		err error
	)
	if size > 0 {
		mem, err = memory.New(size)
	} else {
		mem, err = memory.NewPages(pages)
	}
	if err != nil {
		return nil, err
	}

	if dataArg == "" {
		return mem, nil
	}

	var segments []memory.Segment
	for _, seg := range strings.Split(dataArg, ",") {
		path, addrStr, hasAddr := strings.Cut(seg, "@")
		var addr uint64
		if hasAddr {
			addr, err = parseNum(addrStr)
			if err != nil {
				return nil, fmt.Errorf("segment address %q: %w", addrStr, err)
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read segment: %w", err)
		}
		segments = append(segments, memory.Segment{Addr: addr, Data: data})
	}
	if err := mem.Initialize(segments); err != nil {
		return nil, err
	}
	return mem, nil
}

func run(mem *memory.Memory, pokeArg, peekArg, dumpArg string) error {
	fmt.Printf("Memory: %d bytes (%d pages)\n", mem.Size(), mem.Pages())

	if pokeArg != "" {
		target, valueStr, ok := strings.Cut(pokeArg, "=")
		if !ok {
			return fmt.Errorf("poke %q: want addr:kind=value", pokeArg)
		}
		addr, kind, err := parseTarget(target)
		if err != nil {
			return fmt.Errorf("poke %q: %w", pokeArg, err)
		}
		v, err := parseValue(kind, valueStr)
		if err != nil {
			return fmt.Errorf("poke %q: %w", pokeArg, err)
		}
		if err := mem.Store(addr, v); err != nil {
			return err
		}
		fmt.Printf("Stored %s at %#x\n", v, addr)
	}

	if peekArg != "" {
		addr, kind, err := parseTarget(peekArg)
		if err != nil {
			return fmt.Errorf("peek %q: %w", peekArg, err)
		}
		v, err := mem.Load(addr, kind)
		if err != nil {
			return err
		}
		fmt.Printf("%#x: %s\n", addr, v)
	}

	if dumpArg != "" {
		addrStr, lenStr, ok := strings.Cut(dumpArg, ":")
		if !ok {
			return fmt.Errorf("dump %q: want addr:length", dumpArg)
		}
		addr, err := parseNum(addrStr)
		if err != nil {
			return fmt.Errorf("dump address %q: %w", addrStr, err)
		}
		length, err := parseNum(lenStr)
		if err != nil {
			return fmt.Errorf("dump length %q: %w", lenStr, err)
		}
		data, err := mem.Read(addr, length)
		if err != nil {
			return err
		}
		fmt.Print(hexDump(addr, data))
	}

	return nil
}

// parseNum accepts decimal or 0x-prefixed hex.
func parseNum(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}

// parseTarget parses "addr:kind".
func parseTarget(s string) (uint64, memory.Kind, error) {
	addrStr, kindStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("want addr:kind")
	}
	addr, err := parseNum(addrStr)
	if err != nil {
		return 0, 0, err
	}
	kind, err := parseKind(kindStr)
	if err != nil {
		return 0, 0, err
	}
	return addr, kind, nil
}

func parseKind(s string) (memory.Kind, error) {
	switch strings.TrimSpace(s) {
	case "i32":
		return memory.KindI32, nil
	case "i64":
		return memory.KindI64, nil
	case "f32":
		return memory.KindF32, nil
	case "f64":
		return memory.KindF64, nil
	}
	return 0, fmt.Errorf("unknown kind %q (want i32, i64, f32 or f64)", s)
}

func parseValue(kind memory.Kind, s string) (memory.Value, error) {
	s = strings.TrimSpace(s)
	switch kind {
	case memory.KindI32:
		v, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return memory.Value{}, err
		}
		return memory.I32(int32(v)), nil
	case memory.KindI64:
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return memory.Value{}, err
		}
		return memory.I64(v), nil
	case memory.KindF32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return memory.Value{}, err
		}
		return memory.F32(float32(v)), nil
	case memory.KindF64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return memory.Value{}, err
		}
		return memory.F64(v), nil
	}
	return memory.Value{}, fmt.Errorf("unknown kind")
}

// hexDump renders data in 16-byte rows with an ASCII column.
func hexDump(base uint64, data []byte) string {
	var b strings.Builder
	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(&b, "%08x  ", base+uint64(row))
		for i := row; i < row+16; i++ {
			if i < end {
				fmt.Fprintf(&b, "%02x ", data[i])
			} else {
				b.WriteString("   ")
			}
			if i%16 == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for i := row; i < end; i++ {
			c := data[i]
			if c < 0x20 || c > 0x7E {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("|\n")
	}
	return b.String()
}
