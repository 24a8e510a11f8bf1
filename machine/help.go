package machine

const helpText = `RPN calculator. Operators follow their operands:   10 6 4 - / p   prints 5

  Literals:     3  -2.5  1e-3  4j  3 4j (= 3+4j)
  Stack:        dup drop over rot swap clear dumpstack(ds)
  Arithmetic:   + - * /  abs floor ceil round
  Bitwise:      and or xor neg shl shr          (32-bit unsigned)
  Trig (rad):   sinr cosr tanr asinr acosr atanr
  Trig (deg):   sind cosd tand asind acosd atand
  Log/exp:      loge log2 log10 logx expe exp2 exp10 expx
  Compare:      > < >= <= =                     (pushes 1 or 0)
  Complex:      real imag r2c c2r
  Registers:    N save  N load  N creg  clregs  dumpreg(dr)       N is 0..255
  Vectors:      LEN N vreal  LEN N vcplx  VAL IDX N vsave  IDX N vload
                N vlen  N cvec  clvecs  dumpvec(dv)
  Output:       print(p)  N precision(k)  getprecision(K)       print keeps the stack
  Subroutine:   : NAME ... ;                    may span lines; call with NAME
                dumpsr(dsr) lists subroutines, dumpprog(dp) the program
  Loop:         10 [ 1 - p dup ]                repeats while ] pops nonzero
  Quit:         quit q bye exit
  Comments:     # to end of line
`
