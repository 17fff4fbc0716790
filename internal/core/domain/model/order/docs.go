// Package order contains the Order aggregate and the two state machines it
// is governed by: the linear preparation Stage sequence and the workflow
// lifecycle WorkflowStatus. The aggregate holds a current-stage pointer only;
// the authoritative stage history lives in the stagerecord package.
package order
