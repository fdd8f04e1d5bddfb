// Command fakemystem speaks the mystem interactive JSON protocol over a tiny
// built-in dictionary. Tests steer it with environment variables:
//
//	FAKEMYSTEM_EXIT_AFTER=n   exit with status 3 after n replies
//	FAKEMYSTEM_REPLY=line     answer every request with line verbatim
//	FAKEMYSTEM_HANG=1         read requests but never answer
//	FAKEMYSTEM_DIE=1          exit with status 4 on the first request, without answering
//	FAKEMYSTEM_IGNORE_TERM=1  ignore SIGTERM and stdin EOF
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

type analysis struct {
	Lex  string   `json:"lex"`
	Wt   *float64 `json:"wt,omitempty"`
	Gr   string   `json:"gr"`
	Qual string   `json:"qual,omitempty"`
}

type token struct {
	Analysis []analysis `json:"analysis"`
	Text     string     `json:"text"`
}

func wt(v float64) *float64 { return &v }

var dictionary = map[string][]analysis{
	"связался": {{Lex: "связываться", Wt: wt(1), Gr: "V,pf,intr=praet,sg,indic,m"}},
	"с":        {{Lex: "с", Wt: wt(0.9999), Gr: "PR="}, {Lex: "с", Wt: wt(0.0001), Gr: "S,abbr=nom,sg"}},
	"лучшим": {
		{Lex: "хороший", Wt: wt(1), Gr: "A=ins,sg,supr,m"},
		{Lex: "хороший", Wt: wt(1), Gr: "A=dat,pl,supr"},
	},
	"подохни": {{Lex: "подыхать", Wt: wt(1), Gr: "V,pf,intr=sg,imper,2p"}},
	"как":     {{Lex: "как", Wt: wt(0.85), Gr: "CONJ="}, {Lex: "как", Wt: wt(0.15), Gr: "ADVPRO="}},
	"все":     {{Lex: "весь", Wt: wt(0.7), Gr: "APRO=nom,pl"}, {Lex: "все", Wt: wt(0.3), Gr: "SPRO,pl=nom"}},
	"мама":    {{Lex: "мама", Gr: "S,f,anim=nom,sg"}},
	"глокая":  {{Lex: "глокий", Wt: wt(0.5), Gr: "A=nom,sg,plen,f", Qual: "bastard"}},
	"странный": {{Lex: "странный", Wt: wt(1), Gr: "A=nom,sg,plen,xyz"}},
	"чудо":    {{Lex: "чудо", Wt: wt(0.6), Gr: "ZZZ=nom,sg"}, {Lex: "чудо", Wt: wt(0.4), Gr: "S,n,inan=acc,sg"}},
}

func main() {
	interactive := flag.Bool("i", false, "print grammatical info")
	disambiguate := flag.Bool("d", false, "contextual disambiguation")
	format := flag.String("format", "text", "output format")
	engGr := flag.Bool("eng-gr", false, "english grammemes")
	weight := flag.Bool("weight", false, "print lemma weights")
	flag.Parse()

	if !*interactive || *format != "json" || !*engGr {
		fmt.Fprintf(os.Stderr, "fakemystem: unsupported invocation %v\n", os.Args[1:])
		os.Exit(2)
	}

	ignoreTerm := os.Getenv("FAKEMYSTEM_IGNORE_TERM") != ""
	if ignoreTerm {
		signal.Ignore(syscall.SIGTERM)
	}
	exitAfter, _ := strconv.Atoi(os.Getenv("FAKEMYSTEM_EXIT_AFTER"))
	reply, hasReply := os.LookupEnv("FAKEMYSTEM_REPLY")
	hang := os.Getenv("FAKEMYSTEM_HANG") != ""
	die := os.Getenv("FAKEMYSTEM_DIE") != ""

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 64*1024), 16*1024*1024)
	out := bufio.NewWriter(os.Stdout)

	served := 0
	for in.Scan() {
		if die {
			os.Exit(4)
		}
		if hang {
			continue
		}
		line := reply
		if !hasReply {
			line = analyze(in.Text(), *disambiguate, *weight)
		}
		out.WriteString(line)
		out.WriteByte('\n')
		out.Flush()

		served++
		if exitAfter > 0 && served >= exitAfter {
			os.Exit(3)
		}
	}

	// Stay alive after EOF so that only a signal ends the process.
	for ignoreTerm || hang {
		time.Sleep(time.Second)
	}
}

func analyze(line string, disambiguate, weight bool) string {
	tokens := []token{}
	for _, word := range strings.Fields(line) {
		found := dictionary[strings.ToLower(word)]
		if disambiguate && len(found) > 1 {
			found = found[:1]
		}
		result := make([]analysis, 0, len(found))
		for _, a := range found {
			if !weight {
				a.Wt = nil
			}
			result = append(result, a)
		}
		tokens = append(tokens, token{Analysis: result, Text: word})
	}
	data, _ := json.Marshal(tokens)
	return string(data)
}
