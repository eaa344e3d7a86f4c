// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/urfave/cli"

	"darkstar/internal/crypt"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

const passwordEnv = "DARKSTAR_PASSWORD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "darkstar"
	myApp.Usage = "obfuscate and encrypt mnemonic phrases under a password"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v1",
			Usage: "use the legacy V1 envelope (Mulberry32, AES-256-CBC, JSON reverse key)",
		},
		cli.BoolFlag{
			Name:  "v2",
			Usage: "use the V2 envelope (Mulberry32, AES-256-CBC, packed fixed-length reverse key)",
		},
		cli.BoolFlag{
			Name:  "v3",
			Usage: "use the V3 envelope (ChaCha-flavored PRNG, AES-256-GCM, packed variable-length reverse key); this is the default",
		},
	}

	myApp.Commands = []cli.Command{
		{
			Name:      "encrypt",
			Usage:     "obfuscate and encrypt a mnemonic phrase",
			ArgsUsage: "<mnemonic> [password]",
			Action:    actionEncrypt,
		},
		{
			Name:      "decrypt",
			Usage:     "recover a mnemonic phrase from its encrypted payload and reverse key",
			ArgsUsage: "<encrypted-json-or-envelope> <reverse-key-base64> [password]",
			Action:    actionDecrypt,
		},
		{
			Name:   "test",
			Usage:  "run the built-in self test against a canned mnemonic and password",
			Action: actionTest,
		},
	}

	if err := myApp.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func versionFromFlags(c *cli.Context) (crypt.Version, error) {
	selected := 0
	version := crypt.Default
	if c.GlobalBool("v1") {
		selected++
		version = crypt.V1
	}
	if c.GlobalBool("v2") {
		selected++
		version = crypt.V2
	}
	if c.GlobalBool("v3") {
		selected++
		version = crypt.V3
	}
	if selected > 1 {
		return 0, errors.New("only one of --v1, --v2, --v3 may be given")
	}
	return version, nil
}

func resolvePassword(c *cli.Context, positional string) (string, error) {
	if positional != "" {
		return positional, nil
	}
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}
	return "", errors.New("no password given: pass it as an argument or set " + passwordEnv)
}

func actionEncrypt(c *cli.Context) error {
	mnemonic := c.Args().Get(0)
	if mnemonic == "" {
		return errors.New("usage: darkstar encrypt <mnemonic> [password]")
	}
	password, err := resolvePassword(c, c.Args().Get(1))
	if err != nil {
		return pkgerrors.Wrap(err, "encrypt")
	}
	version, err := versionFromFlags(c)
	if err != nil {
		return pkgerrors.Wrap(err, "encrypt")
	}

	out, err := crypt.Encrypt(mnemonic, password, version)
	if err != nil {
		return pkgerrors.Wrap(err, "encrypt")
	}
	fmt.Println(out)
	return nil
}

func actionDecrypt(c *cli.Context) error {
	encryptedData := c.Args().Get(0)
	reverseKey := c.Args().Get(1)
	if encryptedData == "" || reverseKey == "" {
		return errors.New("usage: darkstar decrypt <encrypted-json-or-envelope> <reverse-key-base64> [password]")
	}
	password, err := resolvePassword(c, c.Args().Get(2))
	if err != nil {
		return pkgerrors.Wrap(err, "decrypt")
	}

	mnemonic, err := crypt.Decrypt(encryptedData, reverseKey, password)
	if err != nil {
		return pkgerrors.Wrap(err, "decrypt")
	}
	fmt.Println(mnemonic)
	return nil
}

func actionTest(c *cli.Context) error {
	version, err := versionFromFlags(c)
	if err != nil {
		return pkgerrors.Wrap(err, "test")
	}

	mnemonic, encrypted, decrypted, ok, err := crypt.SelfTest(version)
	if err != nil {
		color.Red("FAILED: %v", err)
		return pkgerrors.Wrap(err, "test")
	}

	fmt.Printf("mnemonic:  %s\n", mnemonic)
	fmt.Printf("encrypted: %s\n", encrypted)
	fmt.Printf("decrypted: %s\n", decrypted)

	if !ok {
		color.Red("FAILED: decrypted mnemonic does not match original")
		return errors.New("self test mismatch")
	}
	color.Green("PASSED")
	return nil
}
