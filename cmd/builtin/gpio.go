package builtin

import (
	"fmt"
	"strconv"

	"github.com/mwantia/cliapi"
	"github.com/mwantia/cliapi/log"
	"github.com/mwantia/cliapi/nvs"
)

// GPIOCount is the number of pins of the simulated bank.
const GPIOCount = 49

var reservedPins = map[int]struct{}{
	19: {}, 20: {}, 22: {}, 23: {}, 24: {}, 25: {}, 26: {},
	27: {}, 28: {}, 29: {}, 30: {}, 31: {}, 32: {},
}

type pinMode int

const (
	modeDisable pinMode = iota
	modeInput
	modeOutput
	modeOutputOD
	modeInputOutput
	modeInputOutputOD
)

var modeNames = map[pinMode]string{
	modeDisable:       "DISABLE",
	modeInput:         "INPUT",
	modeOutput:        "OUTPUT",
	modeOutputOD:      "OUTPUT_OD",
	modeInputOutput:   "INPUT_OUTPUT",
	modeInputOutputOD: "INPUT_OUTPUT_OD",
}

var modeAliases = map[string]pinMode{
	"in":         modeInput,
	"input":      modeInput,
	"out":        modeOutput,
	"output":     modeOutput,
	"od":         modeOutputOD,
	"open-drain": modeOutputOD,
	"inout":      modeInputOutput,
	"inout_od":   modeInputOutputOD,
}

var pullAliases = map[string]string{
	"up":    "PULLUP",
	"down":  "PULLDOWN",
	"both":  "UP+DOWN",
	"none":  "FLOATING",
	"float": "FLOATING",
}

type pinState struct {
	mode       pinMode
	pull       string
	level      int
	configured bool
}

// GPIO configures a simulated pin bank and can save a pin configuration
// into the key/value store under the "gpio" namespace.
type GPIO struct {
	store nvs.Store
	log   *log.Logger
	pins  [GPIOCount]pinState
}

func NewGPIO(store nvs.Store, logger *log.Logger) *GPIO {
	if logger == nil {
		logger = log.Nop()
	}
	return &GPIO{
		store: store,
		log:   logger,
	}
}

// Command returns the "gpio" declaration bound to g.
func (g *GPIO) Command() *cliapi.Command {
	return &cliapi.Command{
		Name: "gpio",
		Help: "Configure a GPIO (mode, pull, level)",
		Func: g.run,
		Args: []cliapi.Arg{
			{Short: "p", Long: "pin", DataType: "<0-48>", Description: "GPIO number", Kind: cliapi.ArgInt, Required: true},
			{Short: "m", Long: "mode", DataType: "<in|out|od>", Description: "Mode: in, out, od, inout, inout_od", Kind: cliapi.ArgString, Required: true},
			{Long: "pull", DataType: "<up|down|none>", Description: "Resistor pull: up, down, both, none", Kind: cliapi.ArgString},
			{Short: "l", Long: "level", DataType: "<0|1>", Description: "Initial level (for output)", Kind: cliapi.ArgInt},
			{Short: "i", Long: "info", Description: "Show extra GPIO information", Kind: cliapi.ArgFlag},
			{Short: "s", Long: "save", Description: "Save configuration to NVS", Kind: cliapi.ArgFlag},
		},
	}
}

// Level returns the simulated level of pin and whether it was configured.
func (g *GPIO) Level(pin int) (int, bool) {
	if pin < 0 || pin >= GPIOCount {
		return 0, false
	}
	return g.pins[pin].level, g.pins[pin].configured
}

func (g *GPIO) run(ctx *cliapi.Context) int {
	w := ctx.Out
	pin := ctx.Int(0)
	modeStr := ctx.Str(1)

	pullStr := "none"
	if ctx.Count(2) > 0 {
		pullStr = ctx.Str(2)
	}
	levelGiven := ctx.Count(3) > 0
	level := ctx.Int(3)

	if pin < 0 || pin >= GPIOCount {
		fmt.Fprintf(w, "ERROR: GPIO %d invalid. Use 0-%d\n", pin, GPIOCount-1)
		return 1
	}
	if _, reserved := reservedPins[pin]; reserved {
		fmt.Fprintf(w, "WARNING: GPIO %d may be reserved for flash/PSRAM\n", pin)
	}

	mode, ok := modeAliases[modeStr]
	if !ok {
		fmt.Fprintf(w, "ERROR: Mode '%s' invalid. Use: in, out, od, inout, inout_od\n", modeStr)
		return 1
	}

	pull, ok := pullAliases[pullStr]
	if !ok {
		fmt.Fprintf(w, "ERROR: Pull '%s' invalid. Use: up, down, both, none\n", pullStr)
		return 1
	}

	// Without -l a configured pin keeps its level
	if !levelGiven {
		level = 0
		if g.pins[pin].configured {
			level = g.pins[pin].level
		}
	}
	if level != 0 && level != 1 {
		fmt.Fprintf(w, "ERROR: Level must be 0 or 1, received: %d\n", level)
		return 1
	}

	fmt.Fprint(w, "\n+-----------------------------------------+\n")
	fmt.Fprintf(w, "|       Configuring GPIO %-2d              |\n", pin)
	fmt.Fprint(w, "+-----------------------------------------+\n")

	g.pins[pin] = pinState{
		mode:       mode,
		pull:       pull,
		level:      level,
		configured: true,
	}

	fmt.Fprintf(w, "|  Mode:      %-27s |\n", modeNames[mode])
	fmt.Fprintf(w, "|  Pull:      %-27s |\n", pull)
	if mode != modeInput {
		levelName := "LOW (0)"
		if level == 1 {
			levelName = "HIGH (1)"
		}
		fmt.Fprintf(w, "|  Level:     %-27s |\n", levelName)
	}
	fmt.Fprintf(w, "|  Status:    %-27s |\n", "OK - Configured")

	if ctx.Flag(4) {
		g.printInfo(ctx, pin)
	}

	if ctx.Flag(5) {
		fmt.Fprint(w, "+-----------------------------------------+\n")
		if err := g.save(ctx, pin); err != nil {
			fmt.Fprintf(w, "|  ERROR: %-30s |\n", cliapi.ErrorName(err))
			fmt.Fprint(w, "+-----------------------------------------+\n")
			g.log.Error("Failed to save GPIO %d config: %v", pin, err)
			return int(cliapi.Code(err))
		}
		fmt.Fprint(w, "|  NVS: Configuration saved!              |\n")
		g.log.Info("GPIO %d config saved to NVS (mode=%d, pull=%s, level=%d)", pin, mode, pull, level)
	}

	fmt.Fprint(w, "+-----------------------------------------+\n\n")
	return 0
}

func (g *GPIO) printInfo(ctx *cliapi.Context, pin int) {
	w := ctx.Out

	configured := 0
	for _, state := range g.pins {
		if state.configured {
			configured++
		}
	}

	rtc := "No"
	if pin <= 21 {
		rtc = "Yes"
	}
	adc := "No"
	switch {
	case pin <= 10:
		adc = "Yes (ADC1)"
	case pin <= 20:
		adc = "Yes (ADC2)"
	}

	fmt.Fprint(w, "+-----------------------------------------+\n")
	fmt.Fprint(w, "|           Extra Information             |\n")
	fmt.Fprint(w, "+-----------------------------------------+\n")
	fmt.Fprintf(w, "|  Current level read:  %d                 |\n", g.pins[pin].level)
	fmt.Fprintf(w, "|  Configured GPIOs:   %-18d |\n", configured)
	fmt.Fprintf(w, "|  RTC support:       %-19s |\n", rtc)
	fmt.Fprintf(w, "|  ADC support:       %-19s |\n", adc)
}

func (g *GPIO) save(ctx *cliapi.Context, pin int) error {
	if g.store == nil {
		return cliapi.ErrInvalidState
	}

	state := g.pins[pin]
	value := fmt.Sprintf("mode=%s,pull=%s,level=%d", modeNames[state.mode], state.pull, state.level)
	return g.store.Set(ctx.Ctx, "gpio", "pin"+strconv.Itoa(pin), []byte(value))
}
