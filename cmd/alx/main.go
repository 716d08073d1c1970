// Command alx is a minimal CLI over the Aletheia content-authenticity
// engine: create authorities, issue certificates, sign payloads into
// .alx envelopes, and verify or inspect them.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aurel3d/aletheia/ca"
	"github.com/aurel3d/aletheia/certutil"
	"github.com/aurel3d/aletheia/compress"
	"github.com/aurel3d/aletheia/digest"
	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
	"github.com/aurel3d/aletheia/signer"
	"github.com/aurel3d/aletheia/verifier"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "ca-init":
		return cmdCAInit(args[1:], out, errOut)
	case "issue", "cert-issue":
		return cmdIssue(args[1:], out, errOut)
	case "chain-build":
		return cmdChainBuild(args[1:], out, errOut)
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "info":
		return cmdInfo(args[1:], out, errOut)
	case "mnemonic":
		return cmdMnemonic(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "alx: Aletheia content-authenticity CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  alx ca-init --seed-out <file> --cert-out <file> --subject-id <id> --subject-name <name> [--seed-hex <64hex>]")
	fmt.Fprintln(w, "  alx issue --ca-seed <file> --ca-cert <file> --seed-out <file> --cert-out <file> --subject-id <id> --subject-name <name> [--is-ca]")
	fmt.Fprintln(w, "  alx chain-build --out <file> <cert-file> [<cert-file> ...]")
	fmt.Fprintln(w, "  alx sign --seed <file> --chain <file> --in <payload> --out <envelope> [--content-type <t>] [--description <d>] [--compress]")
	fmt.Fprintln(w, "  alx verify --in <envelope> --root <hex-pubkey> [--root <hex-pubkey> ...] [--revoked <hex-serial> ...]")
	fmt.Fprintln(w, "  alx info --in <envelope>")
	fmt.Fprintln(w, "  alx mnemonic export --seed <file>")
	fmt.Fprintln(w, "  alx mnemonic import --out <file> --phrase \"<24 words>\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - seed files hold a raw 32-byte ed25519 seed, hex-encoded, mode 0600")
	fmt.Fprintln(w, "  - cert files and chain files hold canonical CBOR, written to stdout-compatible byte streams")
	fmt.Fprintln(w, "  - chain-build takes certificates leaf-first, root last")
}

func cmdCAInit(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("ca-init", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var seedOut, certOut, subjectID, subjectName, seedHex string
	fs.StringVar(&seedOut, "seed-out", "", "Path to write the new root seed")
	fs.StringVar(&certOut, "cert-out", "", "Path to write the self-signed root certificate")
	fs.StringVar(&subjectID, "subject-id", "", "Root authority's subject id")
	fs.StringVar(&subjectName, "subject-name", "", "Root authority's subject name")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional 64-hex-char seed, for reproducible demos")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if seedOut == "" || certOut == "" || subjectID == "" || subjectName == "" {
		fmt.Fprintln(errOut, "usage: alx ca-init --seed-out <file> --cert-out <file> --subject-id <id> --subject-name <name>")
		return 2
	}

	key, err := resolveOrGenerateKey(seedHex)
	if err != nil {
		fmt.Fprintf(errOut, "key: %v\n", err)
		return 1
	}

	root, err := ca.NewRoot(key, subjectID, subjectName)
	if err != nil {
		fmt.Fprintf(errOut, "ca-init: %v\n", err)
		return 1
	}

	if err := writeSeedFile(seedOut, key.Seed()); err != nil {
		fmt.Fprintf(errOut, "write seed: %v\n", err)
		return 1
	}
	certBytes, err := envelope.EncodeCertRecord(root.Certificate, true)
	if err != nil {
		fmt.Fprintf(errOut, "encode cert: %v\n", err)
		return 1
	}
	if err := os.WriteFile(certOut, certBytes, 0o644); err != nil {
		fmt.Fprintf(errOut, "write cert: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "Created root authority %q\n", subjectID)
	fmt.Fprintf(out, "Public key: %s\n", hex.EncodeToString(key.Public))
	fmt.Fprintf(out, "Seed:       %s\n", seedOut)
	fmt.Fprintf(out, "Cert:       %s\n", certOut)
	return 0
}

func cmdIssue(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var caSeedPath, caCertPath, seedOut, certOut, subjectID, subjectName, seedHex string
	var isCA bool
	fs.StringVar(&caSeedPath, "ca-seed", "", "Path to the issuing authority's seed")
	fs.StringVar(&caCertPath, "ca-cert", "", "Path to the issuing authority's own certificate")
	fs.StringVar(&seedOut, "seed-out", "", "Path to write the new subject's seed")
	fs.StringVar(&certOut, "cert-out", "", "Path to write the issued certificate")
	fs.StringVar(&subjectID, "subject-id", "", "New subject's id")
	fs.StringVar(&subjectName, "subject-name", "", "New subject's name")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional 64-hex-char seed for the subject, for reproducible demos")
	fs.BoolVar(&isCA, "is-ca", false, "Mark the issued certificate as a CA")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if caSeedPath == "" || caCertPath == "" || seedOut == "" || certOut == "" || subjectID == "" || subjectName == "" {
		fmt.Fprintln(errOut, "usage: alx issue --ca-seed <file> --ca-cert <file> --seed-out <file> --cert-out <file> --subject-id <id> --subject-name <name>")
		return 2
	}

	caKey, err := readSeedFile(caSeedPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --ca-seed: %v\n", err)
		return 1
	}
	caCertBytes, err := os.ReadFile(caCertPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --ca-cert: %v\n", err)
		return 1
	}
	caCert, err := envelope.DecodeCertRecord(caCertBytes)
	if err != nil {
		fmt.Fprintf(errOut, "decode --ca-cert: %v\n", err)
		return 1
	}

	authority := ca.FromKeyAndCertificate(caKey, caCert)

	subjectKey, err := resolveOrGenerateKey(seedHex)
	if err != nil {
		fmt.Fprintf(errOut, "subject key: %v\n", err)
		return 1
	}

	cert, err := authority.Issue(subjectID, subjectName, subjectKey.Public, isCA)
	if err != nil {
		fmt.Fprintf(errOut, "issue: %v\n", err)
		return 1
	}

	if err := writeSeedFile(seedOut, subjectKey.Seed()); err != nil {
		fmt.Fprintf(errOut, "write seed: %v\n", err)
		return 1
	}
	certBytes, err := envelope.EncodeCertRecord(cert, true)
	if err != nil {
		fmt.Fprintf(errOut, "encode cert: %v\n", err)
		return 1
	}
	if err := os.WriteFile(certOut, certBytes, 0o644); err != nil {
		fmt.Fprintf(errOut, "write cert: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "Issued certificate for %q (is_ca=%t)\n", subjectID, isCA)
	fmt.Fprintf(out, "Seed: %s\n", seedOut)
	fmt.Fprintf(out, "Cert: %s\n", certOut)
	return 0
}

func cmdChainBuild(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("chain-build", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var chainOut string
	fs.StringVar(&chainOut, "out", "", "Path to write the assembled chain")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if chainOut == "" || fs.NArg() == 0 {
		fmt.Fprintln(errOut, "usage: alx chain-build --out <file> <cert-file> [<cert-file> ...]")
		return 2
	}

	chain := make([]envelope.Certificate, 0, fs.NArg())
	for _, path := range fs.Args() {
		b, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(errOut, "read %s: %v\n", path, err)
			return 1
		}
		cert, err := envelope.DecodeCertRecord(b)
		if err != nil {
			fmt.Fprintf(errOut, "decode %s: %v\n", path, err)
			return 1
		}
		chain = append(chain, cert)
	}

	if err := certutil.ValidateStructure(chain); err != nil {
		fmt.Fprintf(errOut, "invalid chain: %v\n", err)
		return 1
	}

	chainBytes, err := envelope.EncodeChain(chain)
	if err != nil {
		fmt.Fprintf(errOut, "encode chain: %v\n", err)
		return 1
	}
	if err := os.WriteFile(chainOut, chainBytes, 0o644); err != nil {
		fmt.Fprintf(errOut, "write chain: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Wrote chain of %d certificates to %s\n", len(chain), chainOut)
	return 0
}

func cmdSign(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var seedPath, chainPath, inPath, outPath, contentType, description string
	var doCompress bool
	fs.StringVar(&seedPath, "seed", "", "Path to the signer's seed")
	fs.StringVar(&chainPath, "chain", "", "Path to the signer's certificate chain")
	fs.StringVar(&inPath, "in", "", "Path to the payload to sign")
	fs.StringVar(&outPath, "out", "", "Path to write the signed envelope")
	fs.StringVar(&contentType, "content-type", "", "Header content_type")
	fs.StringVar(&description, "description", "", "Header description")
	fs.BoolVar(&doCompress, "compress", false, "Compress the payload before signing")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if seedPath == "" || chainPath == "" || inPath == "" || outPath == "" {
		fmt.Fprintln(errOut, "usage: alx sign --seed <file> --chain <file> --in <payload> --out <envelope>")
		return 2
	}

	key, err := readSeedFile(seedPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --seed: %v\n", err)
		return 1
	}
	chainBytes, err := os.ReadFile(chainPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --chain: %v\n", err)
		return 1
	}
	chain, err := envelope.DecodeChain(chainBytes)
	if err != nil {
		fmt.Fprintf(errOut, "decode --chain: %v\n", err)
		return 1
	}
	payload, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --in: %v\n", err)
		return 1
	}

	s, err := signer.New(key, chain)
	if err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}

	header := envelope.Header{ContentType: contentType, Description: description}
	envelopeBytes, err := s.Sign(header, payload, signer.Options{Compress: doCompress})
	if err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}

	if err := os.WriteFile(outPath, envelopeBytes, 0o644); err != nil {
		fmt.Fprintf(errOut, "write --out: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Signed %d bytes -> %s (%d bytes)\n", len(payload), outPath, len(envelopeBytes))
	return 0
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdVerify(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var inPath string
	var roots, revoked stringList
	fs.StringVar(&inPath, "in", "", "Path to the envelope to verify")
	fs.Var(&roots, "root", "Trusted root public key, hex-encoded (repeatable)")
	fs.Var(&revoked, "revoked", "Revoked certificate serial, hex-encoded (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inPath == "" || len(roots) == 0 {
		fmt.Fprintln(errOut, "usage: alx verify --in <envelope> --root <hex-pubkey> [--root ...] [--revoked <hex-serial> ...]")
		return 2
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --in: %v\n", err)
		return 1
	}

	trustedRoots := make([][]byte, 0, len(roots))
	for _, r := range roots {
		b, err := hex.DecodeString(r)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --root %q: %v\n", r, err)
			return 2
		}
		trustedRoots = append(trustedRoots, b)
	}

	var opts []verifier.VerifyOption
	if len(revoked) > 0 {
		revokedSerials := make([][]byte, 0, len(revoked))
		for _, r := range revoked {
			b, err := hex.DecodeString(r)
			if err != nil {
				fmt.Fprintf(errOut, "invalid --revoked %q: %v\n", r, err)
				return 2
			}
			revokedSerials = append(revokedSerials, b)
		}
		opts = append(opts, verifier.WithRevokedSerials(revokedSerials))
	}

	result, err := verifier.Verify(data, trustedRoots, opts...)
	if err != nil {
		fmt.Fprintf(errOut, "INVALID: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "VALID")
	fmt.Fprintf(out, "creator_id:   %s\n", result.CreatorID)
	fmt.Fprintf(out, "creator_name: %s\n", result.CreatorName)
	fmt.Fprintf(out, "signed_at:    %s\n", time.Unix(result.SignedAt, 0).UTC().Format(time.RFC3339))
	if result.ContentType != "" {
		fmt.Fprintf(out, "content_type: %s\n", result.ContentType)
	}
	if result.Description != "" {
		fmt.Fprintf(out, "description:  %s\n", result.Description)
	}
	return 0
}

func cmdInfo(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var inPath string
	fs.StringVar(&inPath, "in", "", "Path to the envelope to inspect")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inPath == "" {
		fmt.Fprintln(errOut, "usage: alx info --in <envelope>")
		return 2
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --in: %v\n", err)
		return 1
	}
	parsed, err := envelope.Parse(data)
	if err != nil {
		fmt.Fprintf(errOut, "parse: %v\n", err)
		return 1
	}

	envelopeCID, err := digest.EnvelopeCID(data)
	if err != nil {
		fmt.Fprintf(errOut, "digest: %v\n", err)
		return 1
	}
	payloadForCID := parsed.Payload
	if parsed.Compressed() {
		decompressed, derr := (compress.LZ4{}).Decompress(parsed.Payload)
		if derr == nil {
			payloadForCID = decompressed
		}
	}
	payloadCID, err := digest.PayloadCID(payloadForCID)
	if err != nil {
		fmt.Fprintf(errOut, "digest: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "version:      %d.%d\n", parsed.VersionMajor, parsed.VersionMinor)
	fmt.Fprintf(out, "compressed:   %t\n", parsed.Compressed())
	fmt.Fprintf(out, "creator_id:   %s\n", parsed.Header.CreatorID)
	fmt.Fprintf(out, "signed_at:    %s\n", time.Unix(parsed.Header.SignedAt, 0).UTC().Format(time.RFC3339))
	if parsed.Header.ContentType != "" {
		fmt.Fprintf(out, "content_type: %s\n", parsed.Header.ContentType)
	}
	if parsed.Header.Description != "" {
		fmt.Fprintf(out, "description:  %s\n", parsed.Header.Description)
	}
	fmt.Fprintf(out, "chain_len:    %d\n", len(parsed.Chain))
	fmt.Fprintf(out, "payload_len:  %d\n", len(parsed.Payload))
	fmt.Fprintf(out, "payload_cid:  %s\n", payloadCID)
	fmt.Fprintf(out, "envelope_cid: %s\n", envelopeCID)
	return 0
}

func cmdMnemonic(args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: alx mnemonic <export|import> ...")
		return 2
	}
	switch args[0] {
	case "export":
		fs := flag.NewFlagSet("mnemonic export", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var seedPath string
		fs.StringVar(&seedPath, "seed", "", "Path to the seed to back up")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if seedPath == "" {
			fmt.Fprintln(errOut, "usage: alx mnemonic export --seed <file>")
			return 2
		}
		key, err := readSeedFile(seedPath)
		if err != nil {
			fmt.Fprintf(errOut, "read --seed: %v\n", err)
			return 1
		}
		phrase, err := key.ToMnemonic()
		if err != nil {
			fmt.Fprintf(errOut, "mnemonic: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, phrase)
		return 0
	case "import":
		fs := flag.NewFlagSet("mnemonic import", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var seedOut, phrase string
		fs.StringVar(&seedOut, "out", "", "Path to write the restored seed")
		fs.StringVar(&phrase, "phrase", "", "The backup mnemonic phrase")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if seedOut == "" || phrase == "" {
			fmt.Fprintln(errOut, "usage: alx mnemonic import --out <file> --phrase \"<words>\"")
			return 2
		}
		key, err := edkey.FromMnemonic(phrase)
		if err != nil {
			fmt.Fprintf(errOut, "mnemonic: %v\n", err)
			return 1
		}
		if err := writeSeedFile(seedOut, key.Seed()); err != nil {
			fmt.Fprintf(errOut, "write --out: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Restored public key: %s\n", hex.EncodeToString(key.Public))
		return 0
	default:
		fmt.Fprintf(errOut, "unknown mnemonic subcommand: %s\n", args[0])
		return 2
	}
}

func resolveOrGenerateKey(seedHex string) (edkey.KeyPair, error) {
	if seedHex == "" {
		return edkey.Generate()
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return edkey.KeyPair{}, fmt.Errorf("invalid --seed-hex: %w", err)
	}
	return edkey.FromSeed(seed)
}

func writeSeedFile(path string, seed []byte) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(seed)+"\n"), 0o600)
}

func readSeedFile(path string) (edkey.KeyPair, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return edkey.KeyPair{}, err
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(b)))
	if err != nil {
		return edkey.KeyPair{}, fmt.Errorf("decode seed: %w", err)
	}
	return edkey.FromSeed(seed)
}
