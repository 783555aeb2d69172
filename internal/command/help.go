package command

// HelpText is the fixed usage summary returned for Help.
const HelpText = `사용 가능한 명령어:
• "홍길동 C3" - 좌측 블록 C3으로 이동
• "홍길동 U1" - 우측 블록 U1로 이동
• "홍길동 AA5" - 우측 블록 AA5로 이동
• "홍길동 학생처" - 부서 옆 빈자리로 이동
• "홍길동 김철수 바꿔" - 자리 교환
• "C3 D4 바꿔" - 두 좌표의 자리 교환
• "C3 D4" - C3 카드를 D4로 이동
• "초기화" - 원본으로 복구
• "저장" - 현재 상태 저장

시나리오 명령어:
• "시나리오 저장 이름" - 현재 상태를 시나리오로 저장
• "시나리오 불러 이름" - 저장된 시나리오 불러오기
• "시나리오 목록" - 저장된 목록 보기
• "시나리오 삭제 이름" - 시나리오 삭제

부서/직원 명령어:
• "A1에 대학본부 만들어" - 부서 추가
• "부서 삭제 교무처" - 부서 삭제
• "C3에 홍길동(팀장) 추가해" - 직원 추가
• "홍길동 삭제해" - 직원 삭제

좌표 안내 (열 A~Z, AA~AN / 행 1~13):
• 1~20열 (A~T): 좌측 블록
• 21~40열 (U~AN): 우측 블록`
