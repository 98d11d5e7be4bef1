package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"skynet-tx/config"
	"skynet-tx/keys"
	"skynet-tx/tx"
	"skynet-tx/util/base58"
	"skynet-tx/util/byteutil"
	"skynet-tx/util/hashutil"
	"skynet-tx/util/log"
)

var (
	algoName    string
	keyName     string
	account     string
	network     string
	contractHex string
	method      string
	argsHex     string
	maxFuel     uint64
	txText      string
)

func init() {
	flag.StringVar(&algoName, "algo", keys.ECDSAP384R1.Name, "key algorithm identifier")
	flag.StringVar(&keyName, "key", "default", "key file name inside the key directory")
	flag.StringVar(&account, "account", "", "target account identifier")
	flag.StringVar(&network, "network", "", "target network, config default if empty")
	flag.StringVar(&contractHex, "contract", "", "smart contract hash, hex")
	flag.StringVar(&method, "method", "", "smart contract method")
	flag.StringVar(&argsHex, "args", "", "method arguments, hex of structured-binary bytes")
	flag.Uint64Var(&maxFuel, "fuel", 0, "max fuel budget")
	flag.StringVar(&txText, "tx", "", "base58 transaction text")
}

func main() {
	flag.Parse()
	config.Load(false)
	log.Init(config.DebugMode())
	log.SetPrefix(config.GetLabel())

	switch flag.Arg(0) {
	case "keygen":
		keygen()
	case "sign":
		sign()
	case "verify":
		verify()
	case "inspect":
		inspect()
	default:
		fmt.Println("usage: skynet-tx [flags] keygen|sign|verify|inspect")
		os.Exit(2)
	}
}

func keygen() {
	params, err := keys.ParamsByName(algoName)
	if err != nil {
		log.Fatal(err)
	}

	priv, err := keys.GenerateKey(params)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(config.GetKeyDir(), 0700); err != nil {
		log.Fatal(err)
	}

	keyFile := path.Join(config.GetKeyDir(), keyName+".key")
	content := params.Name + ":" + byteutil.ToHex(priv.Raw()) + "\n"
	if err := os.WriteFile(keyFile, []byte(content), 0600); err != nil {
		log.Fatal(err)
	}

	pub, err := priv.Public()
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("key written to %s", keyFile)
	fmt.Println(accountID(pub))
}

func sign() {
	priv := loadKey()

	t := tx.New()
	t.SetAccount(account)
	t.SetMaxFuel(maxFuel)
	t.GenNonce()

	if network == "" {
		network = config.GetNetwork()
	}
	t.SetNetwork(network)

	if err := t.SetSmartContractHashHex(contractHex); err != nil {
		log.Fatal(err)
	}
	t.SetSmartContractMethod(method)
	if err := t.SetSmartContractArgsHex(argsHex); err != nil {
		log.Fatal(err)
	}

	if _, err := t.Sign(priv); err != nil {
		log.Fatal(err)
	}

	text, err := t.ToBase58()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(text)
}

func verify() {
	t := tx.New()
	if err := t.FromBase58(txText); err != nil {
		log.Fatal(err)
	}

	ok, err := t.Verify()
	if err != nil {
		log.Fatal(err)
	}

	if !ok {
		fmt.Println("INVALID")
		os.Exit(1)
	}

	fmt.Println("OK")
}

func inspect() {
	t := tx.New()
	if err := t.FromBase58(txText); err != nil {
		log.Fatal(err)
	}

	o := t.ToObject()
	fmt.Printf("schema:   %s\n", o.Data.Schema)
	fmt.Printf("account:  %s\n", o.Data.Account)
	fmt.Printf("maxFuel:  %d\n", o.Data.MaxFuel)
	fmt.Printf("nonce:    %s\n", byteutil.ToHex(o.Data.Nonce))
	fmt.Printf("network:  %s\n", o.Data.Network)
	fmt.Printf("contract: %s\n", byteutil.ToHex(o.Data.Contract))
	fmt.Printf("method:   %s\n", o.Data.Method)
	fmt.Printf("caller:   %s (%d bytes)\n",
		keys.JoinName(o.Data.Caller.Algorithm, o.Data.Caller.Curve), len(o.Data.Caller.Raw))
	fmt.Printf("args:     %s\n", byteutil.ToHex(o.Data.Args))
	fmt.Printf("sig:      %s\n", byteutil.ToHex(o.Signature))

	if !t.SignerKey().IsEmpty() {
		fmt.Printf("signer:   %s\n", accountID(t.SignerKey()))
	}
}

func loadKey() keys.PrivateKey {
	keyFile := path.Join(config.GetKeyDir(), keyName+".key")
	content, err := os.ReadFile(keyFile)
	if err != nil {
		log.Fatal(err)
	}

	name, rawHex, found := splitKeyFile(string(content))
	if !found {
		log.Fatalf("malformed key file %s", keyFile)
	}

	params, err := keys.ParamsByName(name)
	if err != nil {
		log.Fatal(err)
	}

	raw, err := byteutil.FromHex(rawHex)
	if err != nil {
		log.Fatal(err)
	}

	priv, err := keys.ImportPrivateRaw(params, raw)
	if err != nil {
		log.Fatal(err)
	}

	return priv
}

func splitKeyFile(content string) (name, rawHex string, found bool) {
	for i := 0; i < len(content); i++ {
		if content[i] == ':' {
			rawHex = content[i+1:]
			for len(rawHex) > 0 && (rawHex[len(rawHex)-1] == '\n' || rawHex[len(rawHex)-1] == '\r') {
				rawHex = rawHex[:len(rawHex)-1]
			}
			return content[:i], rawHex, true
		}
	}

	return "", "", false
}

// accountID derives the textual account identifier of a public key:
// base58-check of hash160 of the raw key bytes.
func accountID(pub keys.PublicKey) string {
	return base58.CheckEncode(hashutil.Hash160(pub.Raw()))
}
