package compiler

import "fmt"

type librarySection int

const (
	sectionText librarySection = iota
	sectionData
	sectionBss
)

// libraryEntry is one runtime routine or one piece of storage a routine
// needs. Entries are emitted at most once, after their dependencies.
type libraryEntry struct {
	section librarySection
	deps    []string
	lines   []string
}

// Calling convention: arguments in rdi, rsi, rdx; result in rax. Routines
// may clobber rax, rcx, rdx, rsi, rdi and r8 through r11.
var runtimeLibrary = map[string]libraryEntry{
	"rt_newline":    {section: sectionData, lines: []string{"rt_newline: db 10"}},
	"rt_true_text":  {section: sectionData, lines: []string{dataLine("rt_true_text", "true")}},
	"rt_false_text": {section: sectionData, lines: []string{dataLine("rt_false_text", "false")}},
	"rt_num_buf":    {section: sectionBss, lines: []string{bssLine("rt_num_buf", 32)}},
	"rt_line_buf":   {section: sectionBss, lines: []string{bssLine("rt_line_buf", stringSize)}},
	"rt_read_byte":  {section: sectionBss, lines: []string{bssLine("rt_read_byte", 1)}},

	// rt_str_length(rdi=str) -> rax=length
	"rt_str_length": {lines: []string{
		"xor rax, rax",
		".loop:",
		"cmp byte [rdi + rax], 0",
		"je .done",
		"inc rax",
		"jmp .loop",
		".done:",
		"ret",
	}},

	// rt_print_str(rdi=str) writes str to stdout.
	"rt_print_str": {deps: []string{"rt_str_length"}, lines: []string{
		"push rdi",
		"call rt_str_length",
		"mov rdx, rax",
		"pop rsi",
		"mov rax, 1",
		"mov rdi, 1",
		"syscall",
		"ret",
	}},

	"rt_print_newline": {deps: []string{"rt_newline"}, lines: []string{
		"mov rax, 1",
		"mov rdi, 1",
		"mov rsi, rt_newline",
		"mov rdx, 1",
		"syscall",
		"ret",
	}},

	// rt_panic(rdi=message) writes message to stderr and exits with status 1.
	"rt_panic": {deps: []string{"rt_str_length", "rt_newline"}, lines: []string{
		"push rdi",
		"call rt_str_length",
		"mov rdx, rax",
		"pop rsi",
		"mov rax, 1",
		"mov rdi, 2",
		"syscall",
		"mov rax, 1",
		"mov rdi, 2",
		"mov rsi, rt_newline",
		"mov rdx, 1",
		"syscall",
		"mov rax, 60",
		"mov rdi, 1",
		"syscall",
	}},

	// rt_int_to_str(rdi=value, rsi=buf) -> rax=buf holding the decimal text.
	// buf must hold at least 32 bytes.
	"rt_int_to_str": {lines: []string{
		"mov rax, rdi",
		"lea r8, [rsi + 31]",
		"mov byte [r8], 0",
		"xor r9, r9",
		"test rax, rax",
		"jns .digits",
		"mov r9, 1",
		"neg rax",
		".digits:",
		"mov rcx, 10",
		".loop:",
		"xor rdx, rdx",
		"div rcx",
		"add dl, '0'",
		"dec r8",
		"mov [r8], dl",
		"test rax, rax",
		"jnz .loop",
		"test r9, r9",
		"jz .move",
		"dec r8",
		"mov byte [r8], '-'",
		".move:",
		"mov rdi, rsi",
		".copy:",
		"mov al, [r8]",
		"mov [rdi], al",
		"inc r8",
		"inc rdi",
		"test al, al",
		"jnz .copy",
		"mov rax, rsi",
		"ret",
	}},

	// rt_bool_to_str(rdi=value) -> rax="true" or "false"
	"rt_bool_to_str": {deps: []string{"rt_true_text", "rt_false_text"}, lines: []string{
		"mov rax, rt_false_text",
		"test rdi, rdi",
		"jz .done",
		"mov rax, rt_true_text",
		".done:",
		"ret",
	}},

	// rt_str_copy(rdi=dst, rsi=src) -> rax=dst, truncating at 255 bytes.
	"rt_str_copy": {lines: []string{
		"mov rax, rdi",
		"xor rcx, rcx",
		".loop:",
		fmt.Sprintf("cmp rcx, %d", stringSize-1),
		"je .done",
		"mov dl, [rsi + rcx]",
		"test dl, dl",
		"jz .done",
		"mov [rdi + rcx], dl",
		"inc rcx",
		"jmp .loop",
		".done:",
		"mov byte [rdi + rcx], 0",
		"ret",
	}},

	// rt_str_append(rdi=dst, rsi=src) -> rax=dst, truncating at 255 bytes.
	"rt_str_append": {deps: []string{"rt_str_length"}, lines: []string{
		"push rdi",
		"push rsi",
		"call rt_str_length",
		"pop rsi",
		"pop rdi",
		"mov rcx, rax",
		"xor r8, r8",
		".loop:",
		fmt.Sprintf("cmp rcx, %d", stringSize-1),
		"jae .done",
		"mov dl, [rsi + r8]",
		"test dl, dl",
		"jz .done",
		"mov [rdi + rcx], dl",
		"inc rcx",
		"inc r8",
		"jmp .loop",
		".done:",
		"mov byte [rdi + rcx], 0",
		"mov rax, rdi",
		"ret",
	}},

	// rt_str_compare(rdi=a, rsi=b) -> rax=-1, 0 or 1 comparing bytes unsigned.
	"rt_str_compare": {lines: []string{
		"xor rcx, rcx",
		".loop:",
		"movzx eax, byte [rdi + rcx]",
		"movzx edx, byte [rsi + rcx]",
		"cmp eax, edx",
		"jb .less",
		"ja .greater",
		"test eax, eax",
		"jz .equal",
		"inc rcx",
		"jmp .loop",
		".less:",
		"mov rax, -1",
		"ret",
		".greater:",
		"mov rax, 1",
		"ret",
		".equal:",
		"xor rax, rax",
		"ret",
	}},

	// rt_str_reverse(rdi=str) reverses str in place; rax=str.
	"rt_str_reverse": {deps: []string{"rt_str_length"}, lines: []string{
		"push rdi",
		"call rt_str_length",
		"pop rdi",
		"mov rsi, rdi",
		"lea rdx, [rdi + rax - 1]",
		".loop:",
		"cmp rsi, rdx",
		"jae .done",
		"mov al, [rsi]",
		"mov cl, [rdx]",
		"mov [rsi], cl",
		"mov [rdx], al",
		"inc rsi",
		"dec rdx",
		"jmp .loop",
		".done:",
		"mov rax, rdi",
		"ret",
	}},

	// rt_str_repeat(rdi=dst, rsi=src, rdx=count) -> rax=dst holding src
	// repeated |count| times, reversed when count is negative.
	"rt_str_repeat": {deps: []string{"rt_str_append", "rt_str_reverse", "rt_str_length"}, lines: []string{
		"push rbx",
		"push r12",
		"push r13",
		"push r14",
		"mov rbx, rdi",
		"mov r12, rsi",
		"mov r13, rdx",
		"mov r14, rdx",
		"test r14, r14",
		"jns .start",
		"neg r14",
		".start:",
		"mov byte [rbx], 0",
		"cmp byte [r12], 0",
		"je .finish",
		".loop:",
		"test r14, r14",
		"jz .finish",
		"mov rdi, rbx",
		"mov rsi, r12",
		"call rt_str_append",
		"dec r14",
		"mov rdi, rbx",
		"call rt_str_length",
		fmt.Sprintf("cmp rax, %d", stringSize-1),
		"jae .finish",
		"jmp .loop",
		".finish:",
		"test r13, r13",
		"jns .done",
		"mov rdi, rbx",
		"call rt_str_reverse",
		".done:",
		"mov rax, rbx",
		"pop r14",
		"pop r13",
		"pop r12",
		"pop rbx",
		"ret",
	}},

	// rt_str_to_int(rdi=str) -> rax, parsing an optionally signed decimal
	// prefix after leading blanks. Text without digits yields 0.
	"rt_str_to_int": {lines: []string{
		"xor rax, rax",
		"xor rcx, rcx",
		"xor r8, r8",
		".skip:",
		"movzx edx, byte [rdi + rcx]",
		"cmp dl, ' '",
		"je .blank",
		"cmp dl, 9",
		"jne .sign",
		".blank:",
		"inc rcx",
		"jmp .skip",
		".sign:",
		"cmp dl, '-'",
		"jne .plus",
		"mov r8, 1",
		"inc rcx",
		"jmp .digits",
		".plus:",
		"cmp dl, '+'",
		"jne .digits",
		"inc rcx",
		".digits:",
		"movzx edx, byte [rdi + rcx]",
		"sub edx, '0'",
		"cmp edx, 9",
		"ja .done",
		"imul rax, rax, 10",
		"add rax, rdx",
		"inc rcx",
		"jmp .digits",
		".done:",
		"test r8, r8",
		"jz .return",
		"neg rax",
		".return:",
		"ret",
	}},

	// rt_read_line(rdi=buf) -> rax=buf holding one line of stdin without its
	// terminator or carriage returns. End of input yields an empty line.
	"rt_read_line": {deps: []string{"rt_read_byte"}, lines: []string{
		"push rbx",
		"push r12",
		"mov rbx, rdi",
		"xor r12, r12",
		".loop:",
		"mov rax, 0",
		"mov rdi, 0",
		"mov rsi, rt_read_byte",
		"mov rdx, 1",
		"syscall",
		"cmp rax, 1",
		"jne .done",
		"movzx eax, byte [rt_read_byte]",
		"cmp al, 10",
		"je .done",
		"cmp al, 13",
		"je .loop",
		fmt.Sprintf("cmp r12, %d", stringSize-1),
		"jae .loop",
		"mov [rbx + r12], al",
		"inc r12",
		"jmp .loop",
		".done:",
		"mov byte [rbx + r12], 0",
		"mov rax, rbx",
		"pop r12",
		"pop rbx",
		"ret",
	}},

	// rt_mem_copy(rdi=dst, rsi=src, rdx=size)
	"rt_mem_copy": {lines: []string{
		"mov rcx, rdx",
		"rep movsb",
		"ret",
	}},

	// rt_mem_zero(rdi=dst, rsi=size)
	"rt_mem_zero": {lines: []string{
		"mov rcx, rsi",
		"xor eax, eax",
		"rep stosb",
		"ret",
	}},
}

// require emits the named library entry and, first, everything it depends
// on. Entries already in the emitted set are skipped.
func (g *generator) require(name string) {
	if g.emitted[name] {
		return
	}
	entry, ok := runtimeLibrary[name]
	if !ok {
		panic(fmt.Sprintf("compiler: unknown runtime routine %s", name))
	}
	g.emitted[name] = true
	for _, dep := range entry.deps {
		g.require(dep)
	}
	switch entry.section {
	case sectionData:
		g.asm.Constants = append(g.asm.Constants, entry.lines...)
	case sectionBss:
		g.asm.Variables = append(g.asm.Variables, entry.lines...)
	default:
		g.asm.Procedures = append(g.asm.Procedures, &Procedure{Name: name, Lines: append([]string(nil), entry.lines...)})
	}
}

// call requests a routine and emits a call to it.
func (g *generator) call(name string) {
	g.require(name)
	g.emit("call %s", name)
}
