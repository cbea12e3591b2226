package main

import (
	"flag"
	"log"

	"github.com/ooktx/rf-signal-transmitter/transmitter/affinity"
	"github.com/ooktx/rf-signal-transmitter/transmitter/gpio"
	"github.com/ooktx/rf-signal-transmitter/transmitter/nano"
	"github.com/ooktx/rf-signal-transmitter/transmitter/ook"
	"github.com/ooktx/rf-signal-transmitter/transmitter/server"
)

func main() {
	listenIP := flag.String("listen", "0.0.0.0", "IP address to bind the web server")
	port := flag.Int("port", 8087, "TCP listen port")
	txGPIO := flag.Int("gpio", 18, "BCM GPIO number driving the transmitter module")
	serialPort := flag.String("serial", "", "Relay through a pilight-usb-nano on this serial port instead of a local GPIO")
	baudRate := flag.Int("baud", 57600, "Baud rate of the serial relay")
	flag.Parse()

	cfg := server.Config{
		ListenIP: *listenIP,
		Port:     *port,
		GPIO:     *txGPIO,
		Serial:   *serialPort,
		Affinity: affinity.Isolate(),
	}

	var tx server.Transmitter
	if *serialPort != "" {
		device, err := nano.Open(*serialPort, *baudRate)
		if err != nil {
			log.Fatal("Error opening serial relay. ", err)
		}
		defer device.Close()
		tx = device
		log.Printf("Relaying through serial transmitter on '%s' at baud rate %d", *serialPort, *baudRate)
	} else {
		// The one-time hardware initialisation must succeed before
		// any transmit request is served.
		host := gpio.NewHost()
		if err := host.Open(); err != nil {
			log.Fatal("Error initialising GPIO hardware. ", err)
		}
		defer host.Close()
		tx = ook.NewTransmitter(host)
		log.Printf("TX BCM GPIO: %d", *txGPIO)
	}

	server.Start(cfg, tx)
}
