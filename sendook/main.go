// Command sendook posts a picode string to a running transmitter
// daemon and prints the daemon's reply.
//
//	sendook -server raspberrypi -port 8087 "c:0101;p:300,900;r:4@"
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
)

func parseRequiredFlags() (string, int, string) {
	serverHost := flag.String("server", "localhost", "Specifies host name or IP address of the transmitter daemon")
	serverPort := flag.Int("port", 8087, "Specifies the port number of the transmitter daemon")

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Picode string not specified")
		flag.Usage()
		os.Exit(2)
	}

	return *serverHost, *serverPort, flag.Arg(0)
}

func main() {

	serverHost, serverPort, picode := parseRequiredFlags()

	target := fmt.Sprintf("http://%s:%d/picode", serverHost, serverPort)

	response, err := http.PostForm(target, url.Values{"picode": {picode}})
	if err != nil {
		log.Fatal("Error posting picode. ", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		log.Fatal("Error reading response. ", err)
	}
	fmt.Print(string(body))

	if response.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
