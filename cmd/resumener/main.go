// resumener 命令行工具：对简历文本执行抽取、分段、技能清洗与分类
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

var (
	command    = pflag.StringP("cmd", "m", "analyze", "执行的命令: analyze=完整分析, segment=文本分段, sanitize=技能清洗, classify=技能分类")
	inputFile  = pflag.StringP("file", "f", "", "简历文本文件，为空或 - 时从标准输入读取")
	configPath = pflag.StringP("config", "c", "", "配置文件路径")
	maxLen     = pflag.Int("maxlen", 0, "分段最大长度，0 表示使用配置值")
	skillList  = pflag.StringSlice("skills", nil, "sanitize/classify 的技能列表，逗号分隔；为空时按行读取输入")
	pretty     = pflag.Bool("pretty", true, "格式化JSON输出")
)

func main() {
	pflag.Parse()
	_ = godotenv.Load()

	var err error
	switch *command {
	case "analyze":
		err = handleAnalyzeCommand(os.Stdout)
	case "segment":
		err = handleSegmentCommand(os.Stdout)
	case "sanitize":
		err = handleSanitizeCommand(os.Stdout)
	case "classify":
		err = handleClassifyCommand(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "错误: 未知命令 '%s'。支持的命令: analyze, segment, sanitize, classify\n", *command)
		pflag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// readInput 读取 --file 指定的文件或标准输入
func readInput() (string, error) {
	var (
		data []byte
		err  error
	)
	if *inputFile == "" || *inputFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*inputFile)
	}
	if err != nil {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return string(data), nil
}

// readSkills 优先使用 --skills，否则按行读取输入
func readSkills() ([]string, error) {
	if len(*skillList) > 0 {
		return *skillList, nil
	}
	text, err := readInput()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}
