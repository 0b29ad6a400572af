// This file is part of Katana.
//
// Katana is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Katana is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Katana.  If not, see <https://www.gnu.org/licenses/>.

package sh4

import (
	"fmt"

	"github.com/jetsetilly/katana/hardware/sh4/sh4reg"
	"github.com/jetsetilly/katana/logger"
)

// the timer unit counts down on the peripheral clock, prescaled by the
// clock select field in the channel's TCR register. rather than counting
// every tick the core schedules a deadline for the underflow and projects
// the count back from the time remaining when TCNT is read.

const numTimers = 3

// TCR fields
const (
	tcrUNIE = uint32(0x020)
	tcrUNF  = uint32(0x100)
)

var tmuNames = [numTimers]string{"tmu0", "tmu1", "tmu2"}

var tmuTCOR = [numTimers]uint32{sh4reg.TCOR0, sh4reg.TCOR1, sh4reg.TCOR2}
var tmuTCNT = [numTimers]uint32{sh4reg.TCNT0, sh4reg.TCNT1, sh4reg.TCNT2}
var tmuTCR = [numTimers]uint32{sh4reg.TCR0, sh4reg.TCR1, sh4reg.TCR2}

var tmuInterrupt = [numTimers]Interrupt{IntTUNI0, IntTUNI1, IntTUNI2}

// prescaler shift per clock select field. the last three selects are
// reserved on the SH7750 (the external clock is not wired to anything in
// the Dreamcast) and count at the undivided peripheral clock.
var timerScale = [8]int64{2, 4, 6, 8, 10, 0, 0, 0}

func timerFreq(tcr uint32) int64 {
	sel := tcr & 0x7
	if sel >= 5 {
		logger.Log("sh4", fmt.Sprintf("timer: reserved clock select %d", sel))
	}
	return int64(peripheralClockFreq) >> timerScale[sel]
}

func (sh *SH4) timerStarted(n int) bool {
	return sh.regs[sh4reg.TSTR].value&(uint32(1)<<n) != 0
}

// timerCount projects the live count of a running timer from the time
// remaining until its deadline. for a stopped timer the stored count is
// returned as is.
func (sh *SH4) timerCount(n int) uint32 {
	r := &sh.regs[tmuTCNT[n]]
	if !sh.timerStarted(n) || sh.tmu[n] == nil {
		return r.value
	}

	freq := timerFreq(sh.regs[tmuTCR[n]].value)
	remaining := sh.sched.RemainingTime(sh.tmu[n])
	return uint32(remaining * freq / nsPerSec)
}

// rescheduleTimer cancels any deadline for the channel and schedules a new
// one, tcnt ticks away at the rate selected by tcr.
func (sh *SH4) rescheduleTimer(n int, tcnt uint32, tcr uint32) {
	if sh.tmu[n] != nil {
		sh.sched.CancelTimer(sh.tmu[n])
	}

	freq := timerFreq(tcr)
	remaining := int64(tcnt) * nsPerSec / freq
	sh.tmu[n] = sh.sched.ScheduleTimer(tmuNames[n], func() {
		sh.expireTimer(n)
	}, remaining)
}

// expireTimer handles a channel reaching its deadline. the underflow flag is
// set whether or not the underflow interrupt is enabled. the channel reloads
// from its constant register and rearms immediately.
func (sh *SH4) expireTimer(n int) {
	tcr := &sh.regs[tmuTCR[n]]
	tcr.value |= tcrUNF

	if tcr.value&tcrUNIE == tcrUNIE {
		sh.RequestInterrupt(tmuInterrupt[n])
	}

	tcor := sh.regs[tmuTCOR[n]].value
	sh.regs[tmuTCNT[n]].value = tcor

	sh.tmu[n] = nil
	sh.rescheduleTimer(n, tcor, tcr.value)
}

// writeTSTR starts and stops the timer channels. starting a channel that is
// already running leaves its deadline alone.
func (sh *SH4) writeTSTR(r *register, _ uint32) {
	for n := 0; n < numTimers; n++ {
		if r.value&(uint32(1)<<n) != 0 {
			if sh.tmu[n] == nil {
				sh.rescheduleTimer(n, sh.regs[tmuTCNT[n]].value, sh.regs[tmuTCR[n]].value)
			}
		} else if sh.tmu[n] != nil {
			sh.sched.CancelTimer(sh.tmu[n])
			sh.tmu[n] = nil
		}
	}
}

// writeTCR reacts to a change of clock select or interrupt control on a
// channel. a running channel is rescheduled with its projected count at the
// new rate. clearing the underflow flag or the interrupt enable withdraws
// any interrupt the channel has requested.
func (sh *SH4) writeTCR(n int, r *register, _ uint32) {
	if sh.timerStarted(n) {
		count := sh.timerCount(n)
		sh.rescheduleTimer(n, count, r.value)
	}

	if r.value&tcrUNIE != tcrUNIE || r.value&tcrUNF != tcrUNF {
		sh.UnrequestInterrupt(tmuInterrupt[n])
	}
}

// writeTCNT reschedules a running channel with the new count.
func (sh *SH4) writeTCNT(n int, r *register, _ uint32) {
	if sh.timerStarted(n) {
		sh.rescheduleTimer(n, r.value, sh.regs[tmuTCR[n]].value)
	}
}

func (sh *SH4) cancelTimers() {
	for n := 0; n < numTimers; n++ {
		if sh.tmu[n] != nil {
			sh.sched.CancelTimer(sh.tmu[n])
			sh.tmu[n] = nil
		}
	}
}

// TimerDeadline returns the guest nanoseconds until channel n next underflows,
// or -1 if no underflow is scheduled. Intended for debugging frontends; the
// register file is the real interface to the timer unit.
func (sh *SH4) TimerDeadline(n int) int64 {
	if n < 0 || n >= numTimers || sh.tmu[n] == nil {
		return -1
	}
	return sh.sched.RemainingTime(sh.tmu[n])
}
