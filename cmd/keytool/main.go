// Package main 提供 keytool 命令行入口
//
// keytool 生成、查看、签名和验证 Ed25519 账本密钥。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dep2p/go-keycore"
	"github.com/dep2p/go-keycore/pkg/lib/log"
)

var logger = log.Logger("keytool")

// errUsage 参数错误，已经输出过帮助
var errUsage = errors.New("invalid usage")

// env 命令执行环境
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// command 子命令
type command struct {
	name    string
	usage   string
	summary string
	run     func(e *env, g *globalFlags, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"gen", "gen", "生成随机密钥对并输出种子和公钥", runGen},
		{"pub", "pub [seed|-]", "输出种子对应的公钥文本", runPub},
		{"sign", "sign [-hex] [-seed S] <message|->", "用 -seed 指定的种子签名，未指定时读取 KEYCORE_SEED", runSign},
		{"verify", "verify [-hex] [-repeat n] [-stats] <pubkey> <sig-hex> <message|->", "验证签名（经过验证缓存）", runVerify},
		{"dump", "dump <key|->", "解释十六进制、公钥文本或种子文本", runDump},
		{"version", "version", "显示版本信息", runVersion},
	}
}

func main() {
	e := &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := run(e, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		os.Exit(1)
	}
}

// run 解析全局参数并分发子命令
func run(e *env, args []string) error {
	fs := flag.NewFlagSet("keytool", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	g := registerGlobalFlags(fs)
	fs.Usage = func() { printHelp(e.stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	if err := g.setupLogging(); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printHelp(e.stderr, fs)
		return errUsage
	}

	name := rest[0]
	for _, c := range commands {
		if c.name == name {
			logger.Debug("running command", "command", name)
			return c.run(e, g, rest[1:])
		}
	}

	fmt.Fprintf(e.stderr, "未知命令: %s\n\n", name)
	printHelp(e.stderr, fs)
	return errUsage
}

// printHelp 打印帮助信息
func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "keytool - Ed25519 账本密钥工具")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "用法:")
	fmt.Fprintln(w, "  keytool [全局选项] <命令> [参数]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "命令:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-70s %s\n", c.usage, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "全局选项:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "环境变量:")
	fmt.Fprintln(w, "  KEYCORE_SEED                     签名使用的种子文本")
	fmt.Fprintln(w, "  KEYCORE_PRESET                   预设名称")
	fmt.Fprintln(w, "  KEYCORE_SIGCACHE_CAPACITY        验证缓存容量")
	fmt.Fprintln(w, "  KEYCORE_SIGCACHE_KEY_DIGEST      缓存键摘要算法 (sha256/blake3/blake2b)")
	fmt.Fprintln(w, "  KEYCORE_LOG_LEVEL                日志级别，如 sigcache=debug,warn")
	fmt.Fprintln(w, "  KEYCORE_LOG_FORMAT               日志格式 (text/json)")
}

func runVersion(e *env, _ *globalFlags, _ []string) error {
	fmt.Fprintln(e.stdout, keycore.VersionInfo())
	return nil
}
