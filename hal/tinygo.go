//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"
)

// Board wiring.
const (
	lcdAddr = 0x27
	lcdCols = 20
	lcdRows = 4
)

var (
	pinMinus = machine.GP10
	pinPlus  = machine.GP11
	pinMain  = machine.GP12
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	lcd    *i2cLCD
	eeprom EEPROM
	t      *tinyGoTime
	serial *uartSerial
}

// New returns a Raspberry Pi Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// LCD: HD44780 behind a PCF8574 backpack at 0x27 on I2C0, GP4 (SDA) / GP5 (SCL).
// Buttons: GP10 (-), GP11 (+), GP12 (main), to ground with internal pull-ups.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led := &pinLED{pin: ledPin}

	pins := []GPIOPin{newLEDPin("LED", led)}
	for _, b := range []struct {
		name string
		pin  machine.Pin
	}{
		{PinMinus, pinMinus},
		{PinPlus, pinPlus},
		{PinMain, pinMain},
	} {
		p := b.pin
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		pins = append(pins, newLevelPin(b.name, p.Get))
	}

	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{SDA: machine.GP4, SCL: machine.GP5, Frequency: 100 * machine.KHz}); err != nil {
		logger.WriteLineString("i2c: " + err.Error())
	}
	dev := hd44780i2c.New(bus, lcdAddr)
	if err := dev.Configure(hd44780i2c.Config{Width: lcdCols, Height: lcdRows}); err != nil {
		logger.WriteLineString("lcd: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		led:    led,
		gpio:   NewGPIO(pins...),
		lcd:    &i2cLCD{dev: dev},
		eeprom: newBoardEEPROM(),
		t:      newTinyGoTime(),
		serial: &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger  { return h.logger }
func (h *tinyGoHAL) LED() LED        { return h.led }
func (h *tinyGoHAL) GPIO() GPIO      { return h.gpio }
func (h *tinyGoHAL) LCD() CharLCD    { return h.lcd }
func (h *tinyGoHAL) EEPROM() EEPROM  { return h.eeprom }
func (h *tinyGoHAL) Time() Time      { return h.t }
func (h *tinyGoHAL) Serial() Serial  { return h.serial }
func (h *tinyGoHAL) Entropy() uint32 { return boardEntropy(h.t) }

// i2cLCD adapts the hd44780i2c driver to CharLCD.
type i2cLCD struct {
	dev hd44780i2c.Device
}

func (l *i2cLCD) Size() (cols, rows uint8) { return lcdCols, lcdRows }

func (l *i2cLCD) CreateChar(slot uint8, bitmap [8]byte) {
	l.dev.CreateCharacter(slot&0x7, bitmap[:])
}

func (l *i2cLCD) SetCursor(col, row uint8) { l.dev.SetCursor(col, row) }
func (l *i2cLCD) Print(b []byte)           { l.dev.Print(b) }
func (l *i2cLCD) Backlight(on bool)        { l.dev.BacklightOn(on) }
