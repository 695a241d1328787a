package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dep2p/go-keycore"
	"github.com/dep2p/go-keycore/pkg/lib/crypto"
)

// envSeed 签名种子的环境变量
const envSeed = "KEYCORE_SEED"

// errInvalidSignature 签名验证失败
var errInvalidSignature = errors.New("signature is invalid")

// ============================================================================
//                              gen / pub / dump
// ============================================================================

func runGen(e *env, _ *globalFlags, args []string) error {
	if len(args) != 0 {
		return usageError(e, "gen")
	}

	sk, err := crypto.GenerateSecretKey()
	if err != nil {
		return err
	}
	defer sk.Destroy()

	return crypto.WriteSecretKey(e.stdout, sk)
}

func runPub(e *env, _ *globalFlags, args []string) error {
	if len(args) > 1 {
		return usageError(e, "pub")
	}

	text, err := argOrStdin(e, args)
	if err != nil {
		return err
	}
	sk, err := crypto.SecretKeyFromStrKeySeed(text)
	if err != nil {
		return err
	}
	defer sk.Destroy()

	pub, err := sk.StrKeyPublic()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, pub)
	return err
}

func runDump(e *env, _ *globalFlags, args []string) error {
	if len(args) != 1 {
		return usageError(e, "dump")
	}
	text, err := argOrStdin(e, args)
	if err != nil {
		return err
	}
	return crypto.LogKey(e.stdout, text)
}

// ============================================================================
//                              sign / verify
// ============================================================================

func runSign(e *env, _ *globalFlags, args []string) error {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	isHex := fs.Bool("hex", false, "消息为十六进制")
	seedText := fs.String("seed", "", "种子文本（未指定时使用 "+envSeed+"）")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError(e, "sign")
	}

	text := *seedText
	if text == "" {
		text = os.Getenv(envSeed)
	}
	if text == "" {
		return fmt.Errorf("未提供种子：设置 %s 或使用 -seed", envSeed)
	}

	msg, err := readMessage(e, fs.Arg(0), *isHex)
	if err != nil {
		return err
	}

	sk, err := crypto.SecretKeyFromStrKeySeed(strings.TrimSpace(text))
	if err != nil {
		return err
	}
	return crypto.UseSecretKey(sk, func(sk *crypto.SecretKey) error {
		sig, err := sk.Sign(msg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, sig.Hex())
		return err
	})
}

func runVerify(e *env, g *globalFlags, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	isHex := fs.Bool("hex", false, "消息为十六进制")
	repeat := fs.Int("repeat", 1, "重复验证次数")
	stats := fs.Bool("stats", false, "输出验证缓存命中/未命中计数")
	if err := fs.Parse(args); err != nil || fs.NArg() != 3 || *repeat < 1 {
		return usageError(e, "verify")
	}

	pk, err := crypto.PublicKeyFromStrKey(fs.Arg(0))
	if err != nil {
		return err
	}
	sig, err := crypto.SignatureFromHex(fs.Arg(1))
	if err != nil {
		return err
	}
	msg, err := readMessage(e, fs.Arg(2), *isHex)
	if err != nil {
		return err
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	svc, err := keycore.New(keycore.WithConfig(cfg))
	if err != nil {
		return err
	}
	// 一次性命令不启动周期导出，计数由 -stats 直接读取
	defer func() { _ = svc.Close() }()

	valid := false
	for i := 0; i < *repeat; i++ {
		valid = svc.VerifySignature(pk, sig, msg)
	}

	if *stats {
		hits, misses := svc.FlushVerifyCacheCounts()
		fmt.Fprintf(e.stdout, "hits: %d\nmisses: %d\n", hits, misses)
	}

	if !valid {
		fmt.Fprintln(e.stdout, "invalid")
		return errInvalidSignature
	}
	fmt.Fprintln(e.stdout, "valid")
	return nil
}

// ============================================================================
//                              输入辅助
// ============================================================================

// argOrStdin 返回唯一参数，参数缺失或为 "-" 时读取标准输入第一行
func argOrStdin(e *env, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(e.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("读取标准输入失败: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readMessage 解析消息参数，"-" 表示读取全部标准输入
func readMessage(e *env, arg string, isHex bool) ([]byte, error) {
	var raw []byte
	if arg == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return nil, fmt.Errorf("读取标准输入失败: %w", err)
		}
		raw = data
	} else {
		raw = []byte(arg)
	}

	if !isHex {
		return raw, nil
	}
	msg, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("消息不是有效的十六进制: %w", err)
	}
	return msg, nil
}

// usageError 输出子命令用法
func usageError(e *env, name string) error {
	for _, c := range commands {
		if c.name == name {
			fmt.Fprintf(e.stderr, "用法: keytool %s\n", c.usage)
		}
	}
	return errUsage
}
